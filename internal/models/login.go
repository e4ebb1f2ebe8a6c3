package models

// LoginRequest represents the JSON body for obtaining a token
// swagger:model LoginRequest
type LoginRequest struct {
	// required: true
	// example: vpupkin@yandex.ru
	Email string `json:"email" validate:"required,email"`

	// required: true
	// example: Qwerty123
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AuthToken string `json:"auth_token"`
}
