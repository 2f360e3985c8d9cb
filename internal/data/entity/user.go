package entity

import (
	"errors"
	"time"
)

var ErrApplicationResolved = errors.New("user: seller application already resolved")

type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleSeller UserRole = "seller"
	RoleAdmin  UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// ApplicationStatus only carries meaning while a seller application exists.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

const ApplyingForSeller = "seller"

type User struct {
	Email         string            `json:"email" db:"email" bson:"email"`
	Name          string            `json:"name" db:"name" bson:"name"`
	Role          UserRole          `json:"role" db:"role" bson:"role"`
	Status        ApplicationStatus `json:"status" db:"status" bson:"status"`
	ApplyingFor   string            `json:"applying_for,omitempty" db:"applying_for" bson:"applying_for,omitempty"`
	LastLoginTime *time.Time        `json:"last_login_time,omitempty" db:"last_login_time" bson:"last_login_time,omitempty"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at" bson:"created_at"`
}

func (u *User) HasRole(role UserRole) bool {
	return u != nil && u.Role == role
}

func (u *User) HasSellerApplication() bool {
	return u.ApplyingFor == ApplyingForSeller
}

// SelfAssignable reports whether anyone may create this account without an
// admin: a plain user, with any seller application still pending.
func (u *User) SelfAssignable() bool {
	if u.Role != RoleUser {
		return false
	}
	return !u.HasSellerApplication() || u.Status == StatusPending
}

// ResolveApplication applies an admin decision. Approval promotes the user to
// seller; any other decision demotes to user and records the decision as the
// status. Repeating the decision already recorded is a no-op; changing the
// outcome of a resolved seller application returns ErrApplicationResolved.
func (u *User) ResolveApplication(decision ApplicationStatus) (changed bool, err error) {
	if u.HasSellerApplication() && u.Status != StatusPending {
		if u.Status == decision {
			return false, nil
		}
		return false, ErrApplicationResolved
	}

	u.Status = decision
	if decision == StatusApproved {
		u.Role = RoleSeller
	} else {
		u.Role = RoleUser
	}
	return true, nil
}
