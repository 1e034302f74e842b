package cupom

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, c *Cupom) error
	BuscarPorID(db *gorm.DB, id uint) (*Cupom, error)
	BuscarPorCodigo(db *gorm.DB, codigo string) (*Cupom, error)
	ListarTodos(db *gorm.DB) ([]Cupom, error)
	Atualizar(db *gorm.DB, c *Cupom) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Cupom) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Cupom, error) {
	var c Cupom
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) BuscarPorCodigo(db *gorm.DB, codigo string) (*Cupom, error) {
	var c Cupom
	if err := db.Where("codigo = ?", NormalizarCodigo(codigo)).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListarTodos mantém a ordem de cadastro, usada pelo relatório de comissões.
func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Cupom, error) {
	var list []Cupom
	err := db.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Cupom) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Cupom{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
