package comentario

import (
	"time"
)

type AuthorDTO struct {
	Type string `json:"type"` // "usuario" | "sistema"
	ID   *uint  `json:"id,omitempty"`
	Nome string `json:"nome,omitempty"`
}

type ComentarioDTO struct {
	ID            uint      `json:"id"`
	SolicitacaoID uint      `json:"solicitacaoId"`
	Texto         string    `json:"texto"`
	Sistema       bool      `json:"sistema"`
	CreatedAt     time.Time `json:"createdAt"`
	Author        AuthorDTO `json:"author"`
}

// CriarRequest é usado em POST /solicitacoes/{id}/comentarios
type CriarRequest struct {
	Texto string `json:"texto" validate:"required,max=4000"`
}

type AtualizarRequest struct {
	Texto string `json:"texto" validate:"required,max=4000"`
}

func toDTO(c Comentario) ComentarioDTO {
	out := ComentarioDTO{
		ID:            c.ID,
		SolicitacaoID: c.SolicitacaoID,
		Texto:         c.Texto,
		Sistema:       c.Sistema,
		CreatedAt:     c.CreatedAt,
	}
	if c.Sistema {
		out.Author = AuthorDTO{Type: "sistema", Nome: "Sistema"}
		return out
	}
	out.Author = AuthorDTO{Type: "usuario", ID: c.UsuarioID, Nome: "Usuário removido"}
	if c.Usuario != nil {
		out.Author.Nome = c.Usuario.Nome
	}
	return out
}

func toDTOs(list []Comentario) []ComentarioDTO {
	out := make([]ComentarioDTO, 0, len(list))
	for _, c := range list {
		out = append(out, toDTO(c))
	}
	return out
}
