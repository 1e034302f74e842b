package usuario

// LoginRequest é usado em POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CriarRequest é usado em POST /usuarios. Sem senha, uma temporária é gerada
// e devolvida uma única vez na resposta.
type CriarRequest struct {
	Nome    string `json:"nome" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=100"`
	Senha   string `json:"senha" validate:"omitempty,min=8,max=72"`
	IsAdmin bool   `json:"isAdmin"`
}

type CriarResponse struct {
	Usuario
	SenhaTemporaria string `json:"senhaTemporaria,omitempty"`
}

// AtualizarRequest é usado em PUT /usuarios/{id}
type AtualizarRequest struct {
	Nome    *string `json:"nome,omitempty" validate:"omitempty,min=2,max=100"`
	IsAdmin *bool   `json:"isAdmin,omitempty"`
	Ativo   *bool   `json:"ativo,omitempty"`
}

// TrocarSenhaRequest é usado em PUT /auth/senha
type TrocarSenhaRequest struct {
	SenhaAtual string `json:"senhaAtual" validate:"required"`
	NovaSenha  string `json:"novaSenha" validate:"required,min=8,max=72"`
}
