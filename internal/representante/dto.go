package representante

// CriarRequest é usado em POST /representantes
type CriarRequest struct {
	Nome     string `json:"nome" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Telefone string `json:"telefone" validate:"omitempty,telefone"`
	ChavePix string `json:"chavePix" validate:"max=150"`
	Ativo    *bool  `json:"ativo"`
}

// AtualizarRequest é usado em PUT /representantes/{id}
// Campos como ponteiro permitem omitir no JSON se não quiser alterar
type AtualizarRequest struct {
	Nome     *string `json:"nome,omitempty" validate:"omitempty,min=2,max=150"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefone *string `json:"telefone,omitempty" validate:"omitempty,telefone"`
	ChavePix *string `json:"chavePix,omitempty" validate:"omitempty,max=150"`
	Ativo    *bool   `json:"ativo,omitempty"`
}
