package response

import (
	"time"

	"healthhive/internal/data/entity"
)

type UserResponse struct {
	Email         string                   `json:"email"`
	Name          string                   `json:"name"`
	Role          entity.UserRole          `json:"role"`
	Status        entity.ApplicationStatus `json:"status"`
	ApplyingFor   string                   `json:"applying_for,omitempty"`
	LastLoginTime *time.Time               `json:"last_login_time,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

type LoginTimeResponse struct {
	LastLoginTime time.Time `json:"last_login_time"`
}

type ApprovalResponse struct {
	Email   string                   `json:"email"`
	Role    entity.UserRole          `json:"role"`
	Status  entity.ApplicationStatus `json:"status"`
	Changed bool                     `json:"changed"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
		Status:        user.Status,
		ApplyingFor:   user.ApplyingFor,
		LastLoginTime: user.LastLoginTime,
		CreatedAt:     user.CreatedAt,
	}
}

func UsersToResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserToResponse(u))
	}
	return out
}
