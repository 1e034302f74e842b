package logo

import (
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, l *Logo) error
	BuscarPorID(db *gorm.DB, id uint) (*Logo, error)
	Listar(db *gorm.DB, somenteAtivos bool) ([]Logo, error)
	ProximaPosicao(db *gorm.DB) (int, error)
	Atualizar(db *gorm.DB, l *Logo) error
	Reordenar(db *gorm.DB, ids []uint) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, l *Logo) error {
	return db.Create(l).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Logo, error) {
	var l Logo
	if err := db.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repositoryImpl) Listar(db *gorm.DB, somenteAtivos bool) ([]Logo, error) {
	var list []Logo
	q := db.Order("posicao ASC, id ASC")
	if somenteAtivos {
		q = q.Where("ativo = ?", true)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ProximaPosicao(db *gorm.DB) (int, error) {
	var max sql.NullInt64
	if err := db.Model(&Logo{}).Select("MAX(posicao)").Row().Scan(&max); err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, l *Logo) error {
	return db.Save(l).Error
}

// Reordenar grava a posição de cada ID conforme o índice na lista.
func (r *repositoryImpl) Reordenar(db *gorm.DB, ids []uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			res := tx.Model(&Logo{}).Where("id = ?", id).Update("posicao", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Logo{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
