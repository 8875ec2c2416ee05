package auth

import (
	"context"
	"errors"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/session"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/pkg/logger"
)

// DefaultTokenKey is the session slot holding the current token.
const DefaultTokenKey = "EECRM_JWT_TOKEN"

// Gate authenticates employees and re-derives the session on each invocation
// from the token persisted in the session store.
type Gate struct {
	credentials CredentialStore
	hasher      PasswordHasher
	tokens      TokenService
	sessions    session.Store
	permissions *PermissionChecker
	tokenKey    string
}

type GateOptions struct {
	Credentials CredentialStore
	Hasher      PasswordHasher
	Tokens      TokenService
	Sessions    session.Store
	Permissions *PermissionChecker
	TokenKey    string
}

func NewGate(opts GateOptions) *Gate {
	tokenKey := opts.TokenKey
	if tokenKey == "" {
		tokenKey = DefaultTokenKey
	}
	return &Gate{
		credentials: opts.Credentials,
		hasher:      opts.Hasher,
		tokens:      opts.Tokens,
		sessions:    opts.Sessions,
		permissions: opts.Permissions,
		tokenKey:    tokenKey,
	}
}

// LogIn checks the credentials and, on success, stores a fresh token over any previous one.
// Unknown email and wrong password both yield false; a failed attempt leaves the stored token
// untouched. The error is reserved for infrastructure failures.
func (g *Gate) LogIn(ctx context.Context, dto LoginDTO) (bool, error) {
	dto = dto.Normalized()
	if appErr := dto.Validate(); appErr != nil {
		return false, nil
	}

	identity, err := g.credentials.GetByEmail(ctx, dto.Email)
	if err != nil {
		return false, err
	}
	if identity == nil || !g.hasher.Verify(identity.PasswordHash, dto.Password) {
		logger.From(ctx).Warn("login failed", "email", dto.Email)
		return false, nil
	}

	token, err := g.tokens.Issue(ctx, identity)
	if err != nil {
		return false, err
	}
	if err := g.sessions.Set(g.tokenKey, token); err != nil {
		return false, internal.NewInternalError("failed to store session token", err)
	}

	logger.From(ctx).Info("employee logged in", "employee_id", identity.ID, "department_id", identity.DepartmentID)
	return true, nil
}

// LogOut discards the stored token.
func (g *Gate) LogOut(ctx context.Context) error {
	if err := g.sessions.Delete(g.tokenKey); err != nil {
		return internal.NewInternalError("failed to clear session token", err)
	}
	logger.From(ctx).Info("session cleared")
	return nil
}

// CurrentUser returns the identity bound to a valid stored token, or nil when there is no
// usable session. Errors come only from the secret provider, the store or the credential lookup.
func (g *Gate) CurrentUser(ctx context.Context) (*Identity, error) {
	info, err := g.inspect(ctx)
	if err != nil {
		return nil, err
	}
	if info.State != TokenValid {
		return nil, nil
	}
	return info.Identity, nil
}

// Authenticate resolves the current principal or fails with ErrNotAuthenticated.
func (g *Gate) Authenticate(ctx context.Context) (*Principal, error) {
	identity, err := g.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, internal.ErrNotAuthenticated
	}

	perms, err := g.permissions.PermissionsFor(ctx, identity)
	if err != nil {
		return nil, err
	}
	return &Principal{Identity: identity, Permissions: perms}, nil
}

// RequireAuthentication wraps op so it only runs for an authenticated principal.
func (g *Gate) RequireAuthentication(op Operation) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		p, err := g.Authenticate(ctx)
		if err != nil {
			return err
		}
		ctx = logger.With(ctx, "employee_id", p.ID())
		return op(ctx, p)
	}
}

// Diagnose reports the state of the stored token without treating it as an error.
func (g *Gate) Diagnose(ctx context.Context) (SessionInfo, error) {
	return g.inspect(ctx)
}

func (g *Gate) inspect(ctx context.Context) (SessionInfo, error) {
	token, ok, err := g.sessions.Get(g.tokenKey)
	if err != nil {
		return SessionInfo{}, internal.NewInternalError("failed to read session token", err)
	}
	if !ok || token == "" {
		return SessionInfo{State: TokenNone}, nil
	}

	claims, err := g.tokens.Validate(ctx, token)
	if err != nil {
		var tokenErr *TokenError
		if errors.As(err, &tokenErr) {
			logger.From(ctx).Debug("stored token rejected", "reason", tokenErr.Reason)
			return SessionInfo{State: tokenErr.Reason}, nil
		}
		return SessionInfo{}, err
	}

	id, _ := claims.EmployeeID()
	identity, err := g.credentials.GetByID(ctx, id)
	if err != nil {
		return SessionInfo{}, err
	}
	if identity == nil {
		// the employee was deleted after login
		logger.From(ctx).Debug("token subject no longer exists", "employee_id", id)
		return SessionInfo{State: TokenNone}, nil
	}

	return SessionInfo{State: TokenValid, Identity: identity, ExpiresAt: claims.ExpiresAt.Time}, nil
}
