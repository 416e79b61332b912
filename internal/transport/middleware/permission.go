package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Efeg35/contravo-sub006/internal/auth"
)

// RequirePermissions creates a middleware that passes when the actor holds
// any of the given permission tokens in their effective global set.
func RequirePermissions(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := auth.ActorFromContext(r.Context())
			if !ok || actor == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			perms, err := auth.EffectivePermissions(actor.GlobalRole, nil)
			if err != nil {
				slog.Warn("access denied: unrecognized role",
					"user_id", actor.ID,
					"role", actor.GlobalRole,
					"error", err)
				http.Error(w, "Unprocessable role", http.StatusUnprocessableEntity)
				return
			}

			hasPermission := false
			for _, required := range permissions {
				if perms.Has(required) {
					hasPermission = true
					break
				}
			}

			if !hasPermission {
				slog.Warn("access denied: actor lacks required permissions",
					"user_id", actor.ID,
					"required_permissions", permissions)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
