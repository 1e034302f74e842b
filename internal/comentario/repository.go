package comentario

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Comentario) error
	ListarPorSolicitacao(db *gorm.DB, solicitacaoID uint) ([]Comentario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Comentario, error)
	Atualizar(db *gorm.DB, id uint, novoTexto string) error
	Remover(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Comentario) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) ListarPorSolicitacao(db *gorm.DB, solicitacaoID uint) ([]Comentario, error) {
	var comentarios []Comentario
	err := db.Preload("Usuario").
		Where("solicitacao_id = ?", solicitacaoID).
		Order("created_at ASC, id ASC").
		Find(&comentarios).Error
	return comentarios, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Comentario, error) {
	var c Comentario
	if err := db.Preload("Usuario").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novoTexto string) error {
	return db.Model(&Comentario{}).Where("id = ?", id).Update("texto", novoTexto).Error
}

func (r *repositoryImpl) Remover(db *gorm.DB, id uint) error {
	res := db.Delete(&Comentario{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Sistema grava um comentário automático; usado dentro da transação de quem altera a solicitação.
func Sistema(db *gorm.DB, solicitacaoID uint, texto string) error {
	return db.Create(&Comentario{SolicitacaoID: solicitacaoID, Texto: texto, Sistema: true}).Error
}
