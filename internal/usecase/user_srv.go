package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthhive/internal/apperr"
	"healthhive/internal/authz"
	"healthhive/internal/data/entity"
	"healthhive/internal/data/repository"
	"healthhive/internal/dto/request"
	"healthhive/internal/dto/response"
	"healthhive/internal/gateway"

	"go.uber.org/zap"
)

type AccountService interface {
	Register(ctx context.Context, caller string, req *request.RegisterUserRequest) (*response.UserResponse, error)
	RecordLogin(ctx context.Context, email string, req *request.LoginTimeRequest) (*response.LoginTimeResponse, error)
	CheckExists(ctx context.Context, email string) (bool, error)
	GetUser(ctx context.Context, email string) (*response.UserResponse, error)
	ListSellers(ctx context.Context) ([]response.UserResponse, error)

	// Admin only
	ListUsers(ctx context.Context, admin string) ([]response.UserResponse, error)
	ListPendingSellers(ctx context.Context, admin string) ([]response.UserResponse, error)
	ResolveApplication(ctx context.Context, admin string, req *request.ApprovalRequest) (*response.ApprovalResponse, error)

	// Bootstrap
	EnsureAdmin(ctx context.Context, email string) error
}

type accountService struct {
	userRepo repository.UserRepository
	policy   *authz.Policy
	events   events
	log      *zap.Logger
	now      func() time.Time
}

func NewAccountService(deps Dependencies) AccountService {
	log := deps.Log.With(zap.String("service", "account"))
	return &accountService{
		userRepo: deps.Repo.User,
		policy:   deps.Policy,
		events:   events{publisher: deps.Events, log: log},
		log:      log,
		now:      time.Now,
	}
}

// Register creates an account. caller is the token subject, empty for an
// anonymous request; only an admin may create sellers, admins or resolved
// applications.
func (s *accountService) Register(ctx context.Context, caller string, req *request.RegisterUserRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	user := &entity.User{
		Email:       req.Email,
		Name:        req.Name,
		Role:        entity.UserRole(req.Role),
		Status:      entity.ApplicationStatus(req.Status),
		ApplyingFor: req.ApplyingFor,
		CreatedAt:   s.now().UTC(),
	}

	if !user.SelfAssignable() {
		if caller == "" {
			s.log.Warn("Anonymous privileged registration rejected",
				zap.String("email", req.Email),
				zap.String("role", req.Role),
				zap.String("status", req.Status),
			)
			return nil, fmt.Errorf("%w: only an admin may register a %s account with status %s", apperr.ErrForbidden, user.Role, user.Status)
		}
		if _, err := s.policy.RequireRole(ctx, caller, entity.RoleAdmin); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Warn("Email already registered", zap.String("email", req.Email))
			return nil, fmt.Errorf("%w: user already exists", apperr.ErrConflict)
		}
		return nil, internalErr(s.log, "failed to register user", err)
	}

	s.log.Info("User registered",
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
		zap.String("applying_for", user.ApplyingFor),
	)
	s.events.publish(ctx, gateway.EventUserRegistered, user.Email, map[string]any{
		"role":         user.Role,
		"status":       user.Status,
		"applying_for": user.ApplyingFor,
	})

	resp := response.UserToResponse(user)
	return &resp, nil
}

// RecordLogin never creates a user; an unknown email is NotFound.
func (s *accountService) RecordLogin(ctx context.Context, email string, req *request.LoginTimeRequest) (*response.LoginTimeResponse, error) {
	at := s.now().UTC()
	if req != nil && req.LastLoginTime != nil && !req.LastLoginTime.IsZero() {
		at = req.LastLoginTime.UTC()
	}

	if err := s.userRepo.UpdateLoginTime(ctx, email, at); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperr.ErrNotFound)
		}
		return nil, internalErr(s.log, "failed to update login time", err)
	}

	return &response.LoginTimeResponse{LastLoginTime: at}, nil
}

func (s *accountService) CheckExists(ctx context.Context, email string) (bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, internalErr(s.log, "failed to check user", err)
	}
	return user != nil, nil
}

func (s *accountService) GetUser(ctx context.Context, email string) (*response.UserResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, internalErr(s.log, "failed to get user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *accountService) ListSellers(ctx context.Context) ([]response.UserResponse, error) {
	return s.find(ctx, repository.UserFilter{Role: entity.RoleSeller, Status: entity.StatusApproved})
}

func (s *accountService) ListUsers(ctx context.Context, admin string) ([]response.UserResponse, error) {
	if _, err := s.policy.RequireRole(ctx, admin, entity.RoleAdmin); err != nil {
		return nil, err
	}
	return s.find(ctx, repository.UserFilter{})
}

func (s *accountService) ListPendingSellers(ctx context.Context, admin string) ([]response.UserResponse, error) {
	if _, err := s.policy.RequireRole(ctx, admin, entity.RoleAdmin); err != nil {
		return nil, err
	}
	return s.find(ctx, repository.UserFilter{
		ApplyingFor: entity.ApplyingForSeller,
		Status:      entity.StatusPending,
	})
}

func (s *accountService) ResolveApplication(ctx context.Context, admin string, req *request.ApprovalRequest) (*response.ApprovalResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if _, err := s.policy.RequireRole(ctx, admin, entity.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, internalErr(s.log, "failed to load applicant", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	}

	changed, err := user.ResolveApplication(entity.ApplicationStatus(req.Status))
	if err != nil {
		s.log.Warn("Application already resolved",
			zap.String("email", user.Email),
			zap.String("current_status", string(user.Status)),
			zap.String("decision", req.Status),
		)
		return nil, fmt.Errorf("%w: application already %s", apperr.ErrConflict, user.Status)
	}

	if changed {
		if err := s.userRepo.UpdateRoleStatus(ctx, user.Email, user.Role, user.Status); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: user not found", apperr.ErrNotFound)
			}
			return nil, internalErr(s.log, "failed to update user approval", err)
		}

		s.log.Info("Application resolved",
			zap.String("email", user.Email),
			zap.String("admin", admin),
			zap.String("status", string(user.Status)),
		)
		s.events.publish(ctx, gateway.EventApplicationResolved, user.Email, map[string]any{
			"status":      user.Status,
			"role":        user.Role,
			"resolved_by": admin,
		})
	}

	return &response.ApprovalResponse{
		Email:   user.Email,
		Role:    user.Role,
		Status:  user.Status,
		Changed: changed,
	}, nil
}

// EnsureAdmin creates the account as an approved admin, or promotes an
// existing one. Admin emails come from configuration at startup.
func (s *accountService) EnsureAdmin(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return internalErr(s.log, "failed to load admin", err)
	}

	switch {
	case user == nil:
		err = s.userRepo.Create(ctx, &entity.User{
			Email:     email,
			Name:      "Administrator",
			Role:      entity.RoleAdmin,
			Status:    entity.StatusApproved,
			CreatedAt: s.now().UTC(),
		})
		if errors.Is(err, repository.ErrDuplicate) {
			return s.EnsureAdmin(ctx, email)
		}
	case user.Role != entity.RoleAdmin:
		err = s.userRepo.UpdateRoleStatus(ctx, email, entity.RoleAdmin, entity.StatusApproved)
	default:
		return nil
	}
	if err != nil {
		return internalErr(s.log, "failed to ensure admin", err)
	}

	s.log.Info("Admin account ensured", zap.String("email", email))
	return nil
}

func (s *accountService) find(ctx context.Context, filter repository.UserFilter) ([]response.UserResponse, error) {
	users, err := s.userRepo.Find(ctx, filter)
	if err != nil {
		return nil, internalErr(s.log, "failed to list users", err)
	}
	return response.UsersToResponse(users), nil
}
