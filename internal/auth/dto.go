// AngelaMos | 2026
// dto.go

package auth

import (
	"github.com/angelamos/sook/internal/user"
)

type SignupRequest struct {
	Username        string `json:"username" validate:"required,min=2,max=60"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Newsletter      bool   `json:"newsletter"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

// SessionResponse is returned by every login flow. Warning carries a
// non-fatal problem such as a failed welcome email.
type SessionResponse struct {
	UserID  string       `json:"userId"`
	Token   string       `json:"token"`
	Account user.Account `json:"account"`
	Warning string       `json:"warning,omitempty"`
}
