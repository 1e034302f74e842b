package solicitacao

import (
	"strings"

	"gorm.io/gorm"
)

// Filtro da listagem do back office.
type Filtro struct {
	Status    Status
	Cupom     string
	Busca     string
	Pagina    int
	PorPagina int
}

func (f *Filtro) normalizar() {
	if f.Pagina < 1 {
		f.Pagina = 1
	}
	if f.PorPagina < 1 || f.PorPagina > 100 {
		f.PorPagina = 20
	}
}

type Repository interface {
	Salvar(db *gorm.DB, s *Solicitacao) error
	BuscarPorID(db *gorm.DB, id uint) (*Solicitacao, error)
	Listar(db *gorm.DB, f Filtro) ([]Solicitacao, int64, error)
	ListarComCupom(db *gorm.DB) ([]Solicitacao, error)
	Atualizar(db *gorm.DB, s *Solicitacao) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, s *Solicitacao) error {
	return db.Create(s).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Solicitacao, error) {
	var s Solicitacao
	if err := db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtro) ([]Solicitacao, int64, error) {
	f.normalizar()
	q := db.Model(&Solicitacao{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Cupom != "" {
		q = q.Where("UPPER(codigo_cupom) = ?", strings.ToUpper(strings.TrimSpace(f.Cupom)))
	}
	if b := strings.TrimSpace(f.Busca); b != "" {
		like := "%" + strings.ToLower(b) + "%"
		q = q.Where("LOWER(nome) LIKE ? OR LOWER(razao_social) LIKE ? OR LOWER(nome_fantasia) LIKE ? OR protocolo = ? OR placa = ?",
			like, like, like, b, strings.ToUpper(b))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []Solicitacao
	err := q.Order("created_at DESC, id DESC").
		Offset((f.Pagina - 1) * f.PorPagina).
		Limit(f.PorPagina).
		Find(&list).Error
	return list, total, err
}

// ListarComCupom devolve, em ordem de envio, as solicitações que citam algum cupom.
func (r *repositoryImpl) ListarComCupom(db *gorm.DB) ([]Solicitacao, error) {
	var list []Solicitacao
	err := db.Where("codigo_cupom <> ''").Order("id ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, s *Solicitacao) error {
	return db.Save(s).Error
}
