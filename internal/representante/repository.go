package representante

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, r *Representante) error
	BuscarPorID(db *gorm.DB, id uint) (*Representante, error)
	ListarTodos(db *gorm.DB) ([]Representante, error)
	Atualizar(db *gorm.DB, id uint, req *AtualizarRequest) (*Representante, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, rep *Representante) error {
	return db.Create(rep).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Representante, error) {
	var rep Representante
	if err := db.First(&rep, id).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

// ListarTodos devolve em ordem de cadastro; o relatório de comissões respeita essa ordem.
func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Representante, error) {
	var list []Representante
	err := db.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, req *AtualizarRequest) (*Representante, error) {
	rep, err := r.BuscarPorID(db, id)
	if err != nil {
		return nil, err
	}
	if req.Nome != nil {
		rep.Nome = *req.Nome
	}
	if req.Email != nil {
		rep.Email = *req.Email
	}
	if req.Telefone != nil {
		rep.Telefone = *req.Telefone
	}
	if req.ChavePix != nil {
		rep.ChavePix = *req.ChavePix
	}
	if req.Ativo != nil {
		rep.Ativo = *req.Ativo
	}
	if err := db.Save(rep).Error; err != nil {
		return nil, err
	}
	return rep, nil
}

// Deletar remove o representante e solta os cupons que apontavam para ele.
func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&Representante{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Table("cupons").
			Where("representante_id = ?", id).
			Update("representante_id", nil).Error
	})
}
