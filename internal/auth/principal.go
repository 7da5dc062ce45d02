package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/abrezinsky/evote/internal/models"
)

// Capability names an action a role may perform
type Capability string

const (
	CapManageUsers     Capability = "manage_users"
	CapViewMonitor     Capability = "view_monitor"
	CapManageElections Capability = "manage_elections"
	CapCastVote        Capability = "cast_vote"
	CapViewResults     Capability = "view_results"
)

var roleCapabilities = map[string][]Capability{
	models.RoleAdmin:    {CapManageUsers, CapViewMonitor, CapManageElections, CapViewResults},
	models.RoleChairman: {CapManageElections, CapViewResults},
	models.RoleVoter:    {CapCastVote, CapViewResults},
}

// RoleCan reports whether role has the capability
func RoleCan(role string, c Capability) bool {
	for _, have := range roleCapabilities[role] {
		if have == c {
			return true
		}
	}
	return false
}

// Principal is the authenticated caller
type Principal struct {
	UserID string
	Role   string
}

// Can reports whether the principal's role has the capability
func (p Principal) Can(c Capability) bool {
	return RoleCan(p.Role, c)
}

type ctxKey struct{}

// WithPrincipal returns a context carrying p
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}

// Authenticate rejects requests without a valid session token (401) and
// stores the caller's Principal in the request context.
func Authenticate(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized - please log in")
				return
			}
			claims, err := m.Parse(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Session expired or invalid - please log in again")
				return
			}
			ctx := WithPrincipal(r.Context(), Principal{UserID: claims.UserID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Require rejects authenticated callers lacking the capability (403)
func Require(c Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized - please log in")
				return
			}
			if !p.Can(c) {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"code": code, "error": message})
}
