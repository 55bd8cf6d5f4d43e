package common

// Error codes carried in the "code" field of API error bodies.
const (
	CodeUnauthorized       = "unauthorized"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUserNotFound       = "user_not_found"
	CodeEmailTaken         = "email_taken"
	CodeUsernameTaken      = "username_taken"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeValidation         = "validation"
	CodeRateLimited        = "rate_limited"
	CodeInternal           = "internal"
)

// Messages the ArcaneDex server has historically returned without a code.
const (
	MsgInvalidPassword = "Password inválida"
	MsgUserNotFound    = "Utilizador não encontrado"
	MsgEmailTaken      = "Email já está em uso"
	MsgUsernameTaken   = "Nome de utilizador já está em uso"
)
