package dto

import (
	"strings"
	"time"

	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate requires every field to be present and non-blank.
func (r UserRegisterRequest) Validate() error {
	if anyBlank(r.Name, r.Email, r.Username, r.Password, r.Role) {
		return apperrors.NewValidationError("All fields are required")
	}
	return nil
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate requires both credentials.
func (r UserLoginRequest) Validate() error {
	if anyBlank(r.Username, r.Password) {
		return apperrors.NewValidationError("Username and password are required")
	}
	return nil
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Message   string    `json:"message"`
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserSummary is the public listing shape of a user.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
