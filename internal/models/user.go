package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                 // Primary key
	Email        string    `json:"email" db:"email"`           // Unique email, used to log in
	Username     string    `json:"username" db:"username"`     // Unique username
	FirstName    string    `json:"first_name" db:"first_name"` // First name
	LastName     string    `json:"last_name" db:"last_name"`   // Last name
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Registration timestamp
}

// User is the public representation of a user.
// swagger:model User
type User struct {
	// example: vpupkin@yandex.ru
	Email string `json:"email"`
	// example: 1
	ID int64 `json:"id"`
	// example: vasya.pupkin
	Username string `json:"username"`
	// example: Вася
	FirstName string `json:"first_name"`
	// example: Пупкин
	LastName string `json:"last_name"`
	// Whether the caller follows this user
	IsSubscribed bool `json:"is_subscribed"`
}

// NewUser builds the public representation of u.
func NewUser(u UserDB, isSubscribed bool) User {
	return User{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// required: true
	// example: vpupkin@yandex.ru
	Email string `json:"email" validate:"required,email,max=254"`

	// required: true
	// example: vasya.pupkin
	Username string `json:"username" validate:"required,max=150"`

	// required: true
	// example: Вася
	FirstName string `json:"first_name" validate:"required,max=150"`

	// required: true
	// example: Пупкин
	LastName string `json:"last_name" validate:"required,max=150"`

	// required: true
	// example: Qwerty123
	Password string `json:"password" validate:"required,max=150"`
}

// RegisterResponse is returned after a successful registration
// swagger:model RegisterResponse
type RegisterResponse struct {
	Email     string `json:"email"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SetPasswordRequest represents the JSON body for a password change
// swagger:model SetPasswordRequest
type SetPasswordRequest struct {
	// required: true
	NewPassword string `json:"new_password" validate:"required,max=150"`

	// required: true
	CurrentPassword string `json:"current_password" validate:"required"`
}
