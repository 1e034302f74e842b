package usuario

import (
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	Salvar(db *gorm.DB, u *Usuario) error
	ListarTodos(db *gorm.DB) ([]Usuario, error)
	Atualizar(db *gorm.DB, u *Usuario) error
	Deletar(db *gorm.DB, id uint) error
	Contar(db *gorm.DB) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func normalizarEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("email = ?", normalizarEmail(email)).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	if err := db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	u.Email = normalizarEmail(u.Email)
	return db.Create(u).Error
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Usuario, error) {
	var list []Usuario
	err := db.Order("nome ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Usuario{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) Contar(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&Usuario{}).Count(&n).Error
	return n, err
}
