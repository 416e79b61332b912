package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Actor is an immutable snapshot of the acting user for the duration of a
// decision. It is built once per request by the auth middleware and threaded
// explicitly through every call; nothing in this package reads session state.
type Actor struct {
	ID             int64               `json:"id"`
	Email          string              `json:"email"`
	Name           string              `json:"name"`
	GlobalRole     GlobalRole          `json:"global_role"`
	Department     string              `json:"department"`
	DepartmentRole DepartmentRole      `json:"department_role"`
	Memberships    []CompanyMembership `json:"company_memberships,omitempty"`
}

// CompanyMembership scopes a role to a single company. An actor holds at most
// one membership per company.
type CompanyMembership struct {
	CompanyID   int64       `json:"company_id"`
	CompanyRole CompanyRole `json:"company_role"`
}

// CompanyRoleFor returns the actor's role within the given company, if any.
func (a *Actor) CompanyRoleFor(companyID int64) (CompanyRole, bool) {
	for _, m := range a.Memberships {
		if m.CompanyID == companyID {
			return m.CompanyRole, true
		}
	}
	return "", false
}

// EffectivePermissionsFor computes the actor's permission set in the context
// of a company, or the plain global set when companyID is nil.
func (a *Actor) EffectivePermissionsFor(companyID *int64) (PermissionSet, error) {
	if companyID == nil {
		return EffectivePermissions(a.GlobalRole, nil)
	}
	if role, ok := a.CompanyRoleFor(*companyID); ok {
		return EffectivePermissions(a.GlobalRole, &role)
	}
	return EffectivePermissions(a.GlobalRole, nil)
}

type ctxKey string

const contextActorKey ctxKey = "actor"

func ActorFromContext(ctx context.Context) (*Actor, bool) {
	a, ok := ctx.Value(contextActorKey).(*Actor)
	return a, ok
}

func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, contextActorKey, actor)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID string, email string) (token string, err error)
	GenerateRefreshToken(userID string, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
