package request

import "time"

type RegisterUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"required,max=120"`
	Role        string `json:"role" validate:"required,oneof=user seller admin"`
	Status      string `json:"status" validate:"required,oneof=pending approved rejected"`
	ApplyingFor string `json:"applying_for,omitempty" validate:"omitempty,oneof=seller"`
}

// LoginTimeRequest may be empty; the server clock is used then.
type LoginTimeRequest struct {
	LastLoginTime *time.Time `json:"last_login_time,omitempty"`
}

type ApprovalRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}
