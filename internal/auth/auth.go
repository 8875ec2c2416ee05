package auth

import (
	"context"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Superuser is the sentinel permission granted to the reserved superuser department.
const Superuser = "superuser"

const (
	CreateEmployee = "create_employee"
	UpdateEmployee = "update_employee"
	DeleteEmployee = "delete_employee"
	CreateClient   = "create_client"
	UpdateClient   = "update_client"
	DeleteClient   = "delete_client"
	CreateContract = "create_contract"
	UpdateContract = "update_contract"
	DeleteContract = "delete_contract"
	CreateEvent    = "create_event"
	UpdateEvent    = "update_event"
	DeleteEvent    = "delete_event"
)

// Identity is the credential record bound to a session.
type Identity struct {
	ID             int64
	Email          string
	FirstName      string
	LastName       string
	PasswordHash   string
	DepartmentID   int64
	DepartmentName string
}

func (i *Identity) FullName() string {
	return i.FirstName + " " + i.LastName
}

// Principal is an authenticated identity together with its resolved permissions.
// It is passed explicitly to every gated operation.
type Principal struct {
	Identity    *Identity
	Permissions PermissionSet
}

func (p *Principal) ID() int64 {
	if p == nil || p.Identity == nil {
		return 0
	}
	return p.Identity.ID
}

func (p *Principal) InDepartment(name string) bool {
	return p != nil && p.Identity != nil && p.Identity.DepartmentName == name
}

type PermissionSet map[string]struct{}

func NewPermissionSet(names ...string) PermissionSet {
	set := make(PermissionSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (s PermissionSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s PermissionSet) IsSuperuser() bool {
	return s.Has(Superuser)
}

// Allows reports whether every required permission is granted, or the sentinel is present.
func (s PermissionSet) Allows(required ...string) bool {
	if s.IsSuperuser() {
		return true
	}
	for _, r := range required {
		if !s.Has(r) {
			return false
		}
	}
	return true
}

func (s PermissionSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Claims is the token payload: sub, department_id and exp, nothing else.
type Claims struct {
	DepartmentID int64 `json:"department_id"`
	jwt.RegisteredClaims
}

// Operation is a business operation run on behalf of an authenticated principal.
type Operation func(ctx context.Context, p *Principal) error

// CredentialStore looks identities up; absent records yield nil, nil.
type CredentialStore interface {
	GetByID(ctx context.Context, id int64) (*Identity, error)
	GetByEmail(ctx context.Context, email string) (*Identity, error)
}

// PermissionRepository resolves a department's name and attached permission names.
type PermissionRepository interface {
	DepartmentPermissions(ctx context.Context, departmentID int64) (department string, permissions []string, err error)
}

// SecretProvider returns the current token signing secret.
type SecretProvider interface {
	SigningSecret(ctx context.Context) ([]byte, error)
}

type TokenService interface {
	Issue(ctx context.Context, identity *Identity) (string, error)
	Validate(ctx context.Context, token string) (*Claims, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// Authorizer checks a principal against required permissions.
type Authorizer interface {
	Authorize(ctx context.Context, p *Principal, required ...string) error
}

// TokenState describes the stored session token for diagnostics.
type TokenState string

const (
	TokenNone         TokenState = "none"
	TokenValid        TokenState = "valid"
	TokenExpired      TokenState = "expired"
	TokenBadSignature TokenState = "bad_signature"
	TokenMalformed    TokenState = "malformed"
)

type SessionInfo struct {
	State     TokenState
	Identity  *Identity
	ExpiresAt time.Time
}
