package dto

// ErrorResponse corpo de erro HTTP. Form ecoa o payload enviado quando um erro
// de validação ou de referência impede a gravação, para o cliente reexibir o formulário.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Form    any    `json:"form,omitempty"`
}
