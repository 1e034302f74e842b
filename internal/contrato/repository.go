package contrato

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Contrato) error
	BuscarPorID(db *gorm.DB, id uint) (*Contrato, error)
	ListarPorSolicitacao(db *gorm.DB, solicitacaoID uint) ([]Contrato, error)
	ListarTodos(db *gorm.DB) ([]Contrato, error)
	Atualizar(db *gorm.DB, c *Contrato) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Contrato) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Contrato, error) {
	var c Contrato
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListarPorSolicitacao(db *gorm.DB, solicitacaoID uint) ([]Contrato, error) {
	var contratos []Contrato
	err := db.Where("solicitacao_id = ?", solicitacaoID).Order("id ASC").Find(&contratos).Error
	return contratos, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Contrato, error) {
	var contratos []Contrato
	err := db.Order("id DESC").Find(&contratos).Error
	return contratos, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Contrato) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Contrato{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
