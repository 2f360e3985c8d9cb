// Package authz decides whether a verified caller may perform an operation.
// Every route goes through the same Policy; nothing here reads client-supplied
// emails as proof of identity.
package authz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"healthhive/internal/apperr"
	"healthhive/internal/data/entity"

	"go.uber.org/zap"
)

// UserLookup is the slice of the user store the policy needs.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

type Policy struct {
	verifier IdentityVerifier
	users    UserLookup
	log      *zap.Logger
}

func NewPolicy(verifier IdentityVerifier, users UserLookup, log *zap.Logger) *Policy {
	return &Policy{
		verifier: verifier,
		users:    users,
		log:      log.With(zap.String("component", "authz")),
	}
}

// Authenticate extracts the bearer token from an Authorization header value
// and returns the verified subject email.
func (p *Policy) Authenticate(ctx context.Context, header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization token", apperr.ErrUnauthenticated)
	}

	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", fmt.Errorf("%w: invalid token format, use: Bearer <token>", apperr.ErrUnauthenticated)
	}

	email, err := p.verifier.Verify(ctx, token)
	if err != nil {
		p.log.Warn("Identity token rejected", zap.Error(err))
		return "", fmt.Errorf("%w: invalid or expired token", apperr.ErrUnauthenticated)
	}

	return email, nil
}

// RequireSelf allows access to resources keyed by pathEmail only for that
// subject or an admin.
func (p *Policy) RequireSelf(ctx context.Context, subject, pathEmail string) error {
	if subject == "" {
		return fmt.Errorf("%w: authentication required", apperr.ErrUnauthenticated)
	}
	if subject == pathEmail {
		return nil
	}

	admin, err := p.IsAdmin(ctx, subject)
	if err != nil {
		return err
	}
	if !admin {
		p.log.Warn("Self-only access denied",
			zap.String("subject", subject),
			zap.String("target", pathEmail),
		)
		return fmt.Errorf("%w: access to another user's resources", apperr.ErrForbidden)
	}

	return nil
}

// RequireRole looks up the subject's own record and checks its role.
func (p *Policy) RequireRole(ctx context.Context, subject string, role entity.UserRole) (*entity.User, error) {
	if subject == "" {
		return nil, fmt.Errorf("%w: authentication required", apperr.ErrUnauthenticated)
	}

	user, err := p.lookup(ctx, subject)
	if err != nil {
		return nil, err
	}
	if !user.HasRole(role) {
		p.log.Warn("Role check failed",
			zap.String("subject", subject),
			zap.String("required_role", string(role)),
		)
		return nil, fmt.Errorf("%w: %s role required", apperr.ErrForbidden, role)
	}

	return user, nil
}

func (p *Policy) IsAdmin(ctx context.Context, subject string) (bool, error) {
	user, err := p.lookup(ctx, subject)
	if errors.Is(err, apperr.ErrForbidden) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.HasRole(entity.RoleAdmin), nil
}

// lookup treats an unknown subject as Forbidden: a verified identity with no
// account holds no role.
func (p *Policy) lookup(ctx context.Context, subject string) (*entity.User, error) {
	user, err := p.users.FindByEmail(ctx, subject)
	if err != nil {
		p.log.Error("Failed to load subject", zap.Error(err), zap.String("subject", subject))
		return nil, fmt.Errorf("%w: load subject", apperr.ErrInternal)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: no account for subject", apperr.ErrForbidden)
	}
	return user, nil
}
