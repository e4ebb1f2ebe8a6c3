package models

// ErrorResponse is the body of a domain error
// swagger:model ErrorResponse
type ErrorResponse struct {
	// example: recipe is already in favorites
	Errors string `json:"errors"`
}
