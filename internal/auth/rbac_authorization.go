package auth

import (
	"log/slog"
	"net/http"
)

// RBACAuthorization builds middleware gating routes on derived capability
// tokens. Permission sets are recomputed per request from the actor snapshot.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

// RequirePermission gates a route on a global capability token.
func (ra *RBACAuthorization) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok || actor == nil {
				ra.logger.Warn("authorization check failed: actor not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			perms, err := EffectivePermissions(actor.GlobalRole, nil)
			if err != nil {
				ra.logger.ErrorContext(r.Context(), "authorization check failed", "error", err, "user_id", actor.ID, "permission", permission)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if !perms.Has(permission) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", actor.ID,
					"required_permission", permission,
					"global_role", actor.GlobalRole)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireGlobalRole gates a route on a minimum global role rank.
func (ra *RBACAuthorization) RequireGlobalRole(required GlobalRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok || actor == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			allowed, err := actor.GlobalRole.Includes(required)
			if err != nil {
				ra.logger.ErrorContext(r.Context(), "role check failed", "error", err, "user_id", actor.ID)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if !allowed {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", actor.ID,
					"required_role", required,
					"global_role", actor.GlobalRole)
				http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
