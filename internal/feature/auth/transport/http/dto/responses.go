package dto

// TokenResponse is the successful login response carrying the signed JWT.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a generic success payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
