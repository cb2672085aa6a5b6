package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tahsinahmed/photoclass-gobackend/internal/auth"
)

type contextKey string

const claimsKey contextKey = "jwt_claims"

// ClaimsVerifier validates a raw bearer token and returns its claims.
type ClaimsVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// RoleLookup resolves the persisted role for an email. Roles live in the
// database, not in the token, so a revoked grant takes effect immediately.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// Guard builds the per-route access gates.
type Guard struct {
	tokens ClaimsVerifier
	roles  RoleLookup
}

func NewGuard(tokens ClaimsVerifier, roles RoleLookup) *Guard {
	return &Guard{tokens: tokens, roles: roles}
}

// Authenticate extracts and verifies the bearer token, then attaches the
// decoded claims to the request context. Missing or invalid tokens get 401.
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r)
		claims, err := g.tokens.Verify(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UnAuthorized User")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route on the stored role matching exactly. Must run
// after Authenticate. Admin does not imply instructor or vice versa.
func (g *Guard) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				writeError(w, http.StatusUnauthorized, "UnAuthorized User")
				return
			}

			stored, err := g.roles.RoleByEmail(r.Context(), claims.Email)
			if err != nil || stored != role {
				writeError(w, http.StatusForbidden, "forbidden message")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the claims Authenticate attached, or nil.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
	})
}
