package authz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid identity token")

// IdentityVerifier resolves a bearer token to the verified subject email.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type identityClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenVerifier accepts HS256 tokens signed with the shared identity secret.
type TokenVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewTokenVerifier(secret, issuer, audience string) *TokenVerifier {
	return &TokenVerifier{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

func (v *TokenVerifier) Verify(_ context.Context, token string) (string, error) {
	if len(v.secret) == 0 {
		return "", fmt.Errorf("%w: verifier has no secret", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	var claims identityClaims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tkn.Valid || claims.Email == "" {
		return "", ErrInvalidToken
	}

	return claims.Email, nil
}

// Issue signs a token for email. Used by tooling and tests that need a
// credential the verifier accepts.
func (v *TokenVerifier) Issue(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := identityClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// StaticVerifier maps fixed tokens to emails. Local runs and tests use it in
// place of a real identity provider.
type StaticVerifier map[string]string

func (v StaticVerifier) Verify(_ context.Context, token string) (string, error) {
	email, ok := v[token]
	if !ok {
		return "", ErrInvalidToken
	}
	return email, nil
}
