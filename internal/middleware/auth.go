package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"cleancity/internal/domain"
)

const identityKey contextKey = "identity"

// IdentityClaims are the token claims minted by the external auth provider.
type IdentityClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// ParseIdentityToken verifies an HS256 bearer token and extracts the identity.
func ParseIdentityToken(secret, tokenString string) (*domain.Identity, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid || claims.Email == "" {
		return nil, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}
	return &domain.Identity{
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}, nil
}

// Identity resolves the caller's identity from an optional bearer token.
// No Authorization header means an anonymous request, which is allowed:
// ownership-filtered views answer empty for anonymous callers. A header
// that is present but unverifiable is rejected outright.
func Identity(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}
			identity, err := ParseIdentityToken(secret, parts[1])
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the authenticated identity, or nil for
// anonymous requests.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	if v, ok := ctx.Value(identityKey).(*domain.Identity); ok {
		return v
	}
	return nil
}

// ContextWithIdentity injects an identity into a request context built
// outside the middleware chain.
func ContextWithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	if identity == nil {
		return ctx
	}
	return context.WithValue(ctx, identityKey, identity)
}
