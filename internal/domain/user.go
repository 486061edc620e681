// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrPhoneAlreadyExists indicates that a user with the given phone number already exists.
	ErrPhoneAlreadyExists = errors.New("phone number already registered")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("wrong password")
	// ErrInvalidPhone indicates a malformed phone number.
	ErrInvalidPhone = errors.New("invalid phone number")
)

// User holds wallet owner data. Balance is stored in paise and must never
// go negative as an effect of a wallet operation.
type User struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Phone          string    `json:"phone"`
	HashedPassword string    `json:"hashed_password"`
	Balance        int64     `json:"balance"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DisplayName returns the user facing name of the user.
func (u User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	HashedPassword string `json:"hashed_password"`
}

// UserWithoutPassword is User data excluding password data.
type UserWithoutPassword struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
