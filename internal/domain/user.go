package domain

import "time"

// User is a registered account holder.
// PasswordHash is the bcrypt hash of the password and must never reach a
// response body — the json:"-" tag enforces that at the marshalling level.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
