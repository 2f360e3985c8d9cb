package middleware

import (
	"errors"
	"net/http"

	"healthhive/internal/apperr"
	"healthhive/internal/authz"
	"healthhive/pkg/utils"

	"go.uber.org/zap"
)

// Authenticated verifies the bearer token and stores the subject email in the
// request context.
func Authenticated(policy *authz.Policy, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := policy.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				logger.Debug("Authentication failed",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				utils.ResponseUnauthorized(w, "Unauthorized access")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetSubjectContext(r.Context(), subject)))
		})
	}
}

// Identify is Authenticated for routes that also serve anonymous callers: a
// missing header passes through without a subject, a bad token is rejected.
func Identify(policy *authz.Policy, logger *zap.Logger) func(http.Handler) http.Handler {
	authenticated := Authenticated(policy, logger)
	return func(next http.Handler) http.Handler {
		withSubject := authenticated(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			withSubject.ServeHTTP(w, r)
		})
	}
}

// SelfOnly restricts a route keyed by the {param} email to that subject or an
// admin. It must run after Authenticated.
func SelfOnly(policy *authz.Policy, param string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := utils.GetSubjectFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			err := policy.RequireSelf(r.Context(), subject, utils.URLParamEmail(r, param))
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, apperr.ErrForbidden):
				utils.ResponseForbidden(w, "Forbidden access")
			case errors.Is(err, apperr.ErrUnauthenticated):
				utils.ResponseUnauthorized(w, "Authentication required")
			default:
				logger.Error("Self-only check failed", zap.Error(err), zap.String("subject", subject))
				utils.ResponseInternalError(w, "Internal server error")
			}
		})
	}
}
