// Package authgate guards routes with the bearer tokens the identity
// provider's session layer issues. Tokens are HS256 JWTs signed with a shared
// secret; the "role" claim carries the caller's primary role.
//
// The provider's own session handling is an external collaborator. This gate
// only checks that a token is present, signed, and unexpired, and (for
// RequireRole) that it carries the expected role claim.
package authgate

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/regionpress/accounthub/internal/app/system/respond"
)

// Principal is the identity extracted from a verified token.
type Principal struct {
	Subject string
	Role    string
}

type ctxKey struct{}

// FromContext returns the Principal a gate middleware stored on the request.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}

// Gate verifies bearer tokens for protected routes.
type Gate struct {
	secret []byte
	log    *zap.Logger
}

// New creates a Gate that accepts tokens signed with secret.
func New(secret string, logger *zap.Logger) *Gate {
	return &Gate{secret: []byte(secret), log: logger}
}

// RequireAuth rejects requests without a valid bearer token.
func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := g.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, p)))
	})
}

// RequireRole rejects requests whose token does not carry the given role claim.
func (g *Gate) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := g.authenticate(w, r)
			if !ok {
				return
			}
			if p.Role != role {
				respond.Error(w, http.StatusForbidden, "Access forbidden. Admins only.")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, p)))
		})
	}
}

func (g *Gate) authenticate(w http.ResponseWriter, r *http.Request) (Principal, bool) {
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		respond.Error(w, http.StatusUnauthorized, "Authentication required.")
		return Principal{}, false
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !tok.Valid {
		g.log.Debug("bearer token rejected", zap.Error(err))
		respond.Error(w, http.StatusUnauthorized, "Invalid or expired token.")
		return Principal{}, false
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Invalid or expired token.")
		return Principal{}, false
	}

	p := Principal{}
	if sub, err := claims.GetSubject(); err == nil {
		p.Subject = sub
	}
	if role, ok := claims["role"].(string); ok {
		p.Role = role
	}
	return p, true
}
