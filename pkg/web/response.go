// Package web defines common components for a web application.
package web

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// JSONError provides type for explicit json encoded error response.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into json friendly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string    `json:"access_token,omitempty"`
	AccessTokenExpiresAt  string    `json:"access_token_expires_at,omitempty"`
	RefreshToken          string    `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt string    `json:"refresh_token_expires_at,omitempty"`
	Data                  any       `json:"data,omitempty"`
	Error                 JSONError `json:"error,omitempty"`
}

// GetErrorMsg converts validator errors into a stable user facing message.
func GetErrorMsg(ve validator.ValidationErrors) JSONError {
	for _, fe := range ve {
		return JSONError{Error: fe.Field() + getErrorMsg(fe)}
	}

	return JSONError{Error: "invalid input"}
}

func getErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "min":
		return fmt.Sprintf(" field must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf(" field must not exceed %s characters", fe.Param())
	case "alphanum":
		return " field accepts only alphanumeric characters"
	case "email":
		return " field must be a valid email"
	case "phone":
		return " field must be a valid phone number"
	case "gt":
		return fmt.Sprintf(" field must be greater than %s", fe.Param())
	}

	return " field is invalid"
}
