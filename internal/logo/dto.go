package logo

type CriarRequest struct {
	Nome      string `json:"nome" validate:"required,max=120"`
	ImagemURL string `json:"imagemUrl" validate:"required,url,max=500"`
	Link      string `json:"link" validate:"omitempty,url,max=500"`
	Posicao   *int   `json:"posicao" validate:"omitempty,min=0"`
	Ativo     *bool  `json:"ativo"`
}

type AtualizarRequest struct {
	Nome      *string `json:"nome" validate:"omitempty,max=120"`
	ImagemURL *string `json:"imagemUrl" validate:"omitempty,url,max=500"`
	Link      *string `json:"link" validate:"omitempty,max=500"`
	Posicao   *int    `json:"posicao" validate:"omitempty,min=0"`
	Ativo     *bool   `json:"ativo"`
}

// ReordenarRequest traz todos os IDs na nova ordem.
type ReordenarRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1,unique"`
}
