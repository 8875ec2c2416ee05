package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock CredentialStore for testing
type mockCredentialStore struct {
	byEmail       map[string]*Identity
	returnError   bool
	errorToReturn error
}

func newMockCredentialStore(hasher PasswordHasher) *mockCredentialStore {
	hash, _ := hasher.Hash("correct_password")

	return &mockCredentialStore{
		byEmail: map[string]*Identity{
			"admin@epic.com":   {ID: 1, Email: "admin@epic.com", PasswordHash: hash, DepartmentID: 1, DepartmentName: "Superuser"},
			"manager@epic.com": {ID: 2, Email: "manager@epic.com", PasswordHash: hash, DepartmentID: 2, DepartmentName: "Management"},
			"sales@epic.com":   {ID: 4, Email: "sales@epic.com", PasswordHash: hash, DepartmentID: 3, DepartmentName: "Sales"},
		},
	}
}

func (m *mockCredentialStore) GetByID(ctx context.Context, id int64) (*Identity, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, i := range m.byEmail {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, nil
}

func (m *mockCredentialStore) GetByEmail(ctx context.Context, email string) (*Identity, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.byEmail[email], nil
}

func (m *mockCredentialStore) setError(err error) {
	m.returnError = true
	m.errorToReturn = err
}

// Mock PermissionRepository; the superuser department deliberately carries a grant
// to show the sentinel ignores attached permissions.
type mockPermissionRepository struct {
	departments map[int64]string
	grants      map[int64][]string
}

func newMockPermissionRepository() *mockPermissionRepository {
	return &mockPermissionRepository{
		departments: map[int64]string{1: "Superuser", 2: "Management", 3: "Sales", 4: "Support"},
		grants: map[int64][]string{
			1: {UpdateEvent},
			2: {CreateEmployee, UpdateEmployee, DeleteEmployee, CreateContract, UpdateContract, UpdateEvent},
			3: {CreateClient, UpdateClient, DeleteClient, UpdateContract, CreateEvent},
			4: {UpdateEvent},
		},
	}
}

func (m *mockPermissionRepository) DepartmentPermissions(ctx context.Context, departmentID int64) (string, []string, error) {
	return m.departments[departmentID], m.grants[departmentID], nil
}

type staticSecret struct {
	secret []byte
	err    error
	calls  int
}

func (s *staticSecret) SigningSecret(ctx context.Context) ([]byte, error) {
	s.calls++
	return s.secret, s.err
}

var _ = ginkgo.Describe("Token service", func() {
	var (
		ctx      context.Context
		secrets  *staticSecret
		tokenGen *JWTTokenGenerator
		now      time.Time
		identity *Identity
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		secrets = &staticSecret{secret: []byte("s1-signing-secret")}
		now = time.Unix(1_760_000_000, 0)
		tokenGen = NewJWTTokenGenerator(secrets, 15*time.Minute).WithClock(func() time.Time { return now })
		identity = &Identity{ID: 4, DepartmentID: 3}
	})

	validateAt := func(token string, at time.Time) (*Claims, error) {
		v := NewJWTTokenGenerator(secrets, 15*time.Minute).WithClock(func() time.Time { return at })
		return v.Validate(ctx, token)
	}

	ginkgo.It("should round-trip subject and department exactly", func() {
		// Given
		token, err := tokenGen.Issue(ctx, identity)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		// When
		claims, err := tokenGen.Validate(ctx, token)

		// Then
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		id, err := claims.EmployeeID()
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(id).To(gomega.Equal(int64(4)))
		gomega.Expect(claims.DepartmentID).To(gomega.Equal(int64(3)))
		gomega.Expect(claims.ExpiresAt.Time.Equal(now.Add(15 * time.Minute))).To(gomega.BeTrue())
	})

	ginkgo.It("should carry exactly sub, department_id and exp", func() {
		token, err := tokenGen.Issue(ctx, identity)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		parts := strings.Split(token, ".")
		gomega.Expect(parts).To(gomega.HaveLen(3))

		header, err := base64.RawURLEncoding.DecodeString(parts[0])
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(string(header)).To(gomega.ContainSubstring(`"alg":"HS256"`))

		payload, err := base64.RawURLEncoding.DecodeString(parts[1])
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		var body map[string]interface{}
		gomega.Expect(json.Unmarshal(payload, &body)).To(gomega.Succeed())
		gomega.Expect(body).To(gomega.HaveLen(3))
		gomega.Expect(body).To(gomega.HaveKeyWithValue("sub", "4"))
		gomega.Expect(body).To(gomega.HaveKeyWithValue("department_id", float64(3)))
		gomega.Expect(body).To(gomega.HaveKeyWithValue("exp", float64(now.Add(15*time.Minute).Unix())))
	})

	ginkgo.Describe("expiry window", func() {
		var token string

		ginkgo.BeforeEach(func() {
			var err error
			token, err = tokenGen.Issue(ctx, identity)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should be valid at issuance and just before the deadline", func() {
			_, err := validateAt(token, now)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = validateAt(token, now.Add(15*time.Minute-time.Second))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should be expired at exactly 15 minutes and after", func() {
			_, err := validateAt(token, now.Add(15*time.Minute))
			gomega.Expect(errors.Is(err, ErrTokenExpired)).To(gomega.BeTrue())

			_, err = validateAt(token, now.Add(time.Hour))
			gomega.Expect(errors.Is(err, ErrTokenExpired)).To(gomega.BeTrue())
		})

		ginkgo.It("should keep the full window when issued mid-second", func() {
			issuedAt := time.Unix(1_760_000_000, 900_000_000)
			midSecond, err := NewJWTTokenGenerator(secrets, 15*time.Minute).
				WithClock(func() time.Time { return issuedAt }).
				Issue(ctx, identity)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = validateAt(midSecond, issuedAt.Add(15*time.Minute-500*time.Millisecond))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = validateAt(midSecond, issuedAt.Add(15*time.Minute-time.Nanosecond))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = validateAt(midSecond, issuedAt.Add(15*time.Minute+100*time.Millisecond))
			gomega.Expect(errors.Is(err, ErrTokenExpired)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("signature", func() {
		ginkgo.It("should reject a token signed with another secret", func() {
			token, err := tokenGen.Issue(ctx, identity)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			secrets.secret = []byte("s2-rotated-secret")
			_, err = tokenGen.Validate(ctx, token)
			gomega.Expect(errors.Is(err, ErrTokenSignature)).To(gomega.BeTrue())
		})

		ginkgo.It("should report a bad signature even when the token is also expired", func() {
			token, err := tokenGen.Issue(ctx, identity)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			secrets.secret = []byte("s2-rotated-secret")
			_, err = validateAt(token, now.Add(time.Hour))
			gomega.Expect(errors.Is(err, ErrTokenSignature)).To(gomega.BeTrue())
			gomega.Expect(errors.Is(err, ErrTokenExpired)).To(gomega.BeFalse())
		})

		ginkgo.It("should reject other algorithms", func() {
			claims := &Claims{DepartmentID: 3, RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "4",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			}}
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secrets.secret)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = tokenGen.Validate(ctx, token)
			gomega.Expect(errors.Is(err, ErrTokenSignature)).To(gomega.BeTrue())
		})

		ginkgo.It("should fetch the secret on every call", func() {
			token, _ := tokenGen.Issue(ctx, identity)
			_, _ = tokenGen.Validate(ctx, token)
			gomega.Expect(secrets.calls).To(gomega.Equal(2))
		})
	})

	ginkgo.Describe("malformed tokens", func() {
		ginkgo.It("should classify garbage as malformed", func() {
			_, err := tokenGen.Validate(ctx, "not-a-token")
			gomega.Expect(errors.Is(err, ErrTokenMalformed)).To(gomega.BeTrue())
		})

		ginkgo.It("should classify a token without expiry as malformed", func() {
			claims := &Claims{DepartmentID: 3, RegisteredClaims: jwt.RegisteredClaims{Subject: "4"}}
			token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secrets.secret)

			_, err := tokenGen.Validate(ctx, token)
			gomega.Expect(errors.Is(err, ErrTokenMalformed)).To(gomega.BeTrue())
		})

		ginkgo.It("should classify a non-numeric subject as malformed", func() {
			claims := &Claims{DepartmentID: 3, RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "jane",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			}}
			token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secrets.secret)

			_, err := tokenGen.Validate(ctx, token)
			gomega.Expect(errors.Is(err, ErrTokenMalformed)).To(gomega.BeTrue())
		})
	})

	ginkgo.It("should surface secret provider failures as they are", func() {
		secrets.err = internal.ErrDecryption
		_, err := tokenGen.Issue(ctx, identity)
		gomega.Expect(errors.Is(err, internal.ErrDecryption)).To(gomega.BeTrue())

		var tokenErr *TokenError
		gomega.Expect(errors.As(err, &tokenErr)).To(gomega.BeFalse())
	})
})

var _ = ginkgo.Describe("Authentication gate", func() {
	var (
		ctx      context.Context
		hasher   *BcryptHasher
		creds    *mockCredentialStore
		secrets  *staticSecret
		sessions *session.MemoryStore
		checker  *PermissionChecker
		now      time.Time
		gate     *Gate
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		hasher = NewBcryptHasher(bcrypt.MinCost)
		creds = newMockCredentialStore(hasher)
		secrets = &staticSecret{secret: []byte("s1-signing-secret")}
		sessions = session.NewMemoryStore()
		checker = NewPermissionChecker(newMockPermissionRepository(), "Superuser")
		now = time.Now().Truncate(time.Second)

		tokens := NewJWTTokenGenerator(secrets, 15*time.Minute).WithClock(func() time.Time { return now })
		gate = NewGate(GateOptions{
			Credentials: creds,
			Hasher:      hasher,
			Tokens:      tokens,
			Sessions:    sessions,
			Permissions: checker,
		})
	})

	storedToken := func() (string, bool) {
		v, ok, err := sessions.Get(DefaultTokenKey)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return v, ok
	}

	ginkgo.Describe("LogIn", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should store a token bound to the employee", func() {
				// When
				ok, err := gate.LogIn(ctx, LoginDTO{Email: "sales@epic.com", Password: "correct_password"})

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeTrue())
				token, stored := storedToken()
				gomega.Expect(stored).To(gomega.BeTrue())
				gomega.Expect(token).ToNot(gomega.BeEmpty())

				identity, err := gate.CurrentUser(ctx)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(identity.ID).To(gomega.Equal(int64(4)))
			})

			ginkgo.It("should accept a differently cased email", func() {
				ok, err := gate.LogIn(ctx, LoginDTO{Email: "  Sales@Epic.com ", Password: "correct_password"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeTrue())
			})

			ginkgo.It("should overwrite the previous token", func() {
				gomega.Expect(sessions.Set(DefaultTokenKey, "old.token.value")).To(gomega.Succeed())

				ok, err := gate.LogIn(ctx, LoginDTO{Email: "manager@epic.com", Password: "correct_password"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeTrue())

				token, _ := storedToken()
				gomega.Expect(token).ToNot(gomega.Equal("old.token.value"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should return false for an unknown email and write nothing", func() {
				ok, err := gate.LogIn(ctx, LoginDTO{Email: "ghost@epic.com", Password: "correct_password"})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeFalse())
				_, stored := storedToken()
				gomega.Expect(stored).To(gomega.BeFalse())
			})

			ginkgo.It("should return false for a wrong password and write nothing", func() {
				ok, err := gate.LogIn(ctx, LoginDTO{Email: "sales@epic.com", Password: "wrong_password"})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeFalse())
				_, stored := storedToken()
				gomega.Expect(stored).To(gomega.BeFalse())
			})

			ginkgo.It("should leave an existing session untouched", func() {
				ok, err := gate.LogIn(ctx, LoginDTO{Email: "sales@epic.com", Password: "correct_password"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeTrue())
				before, _ := storedToken()

				ok, err = gate.LogIn(ctx, LoginDTO{Email: "ghost@epic.com", Password: "whatever"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeFalse())

				after, _ := storedToken()
				gomega.Expect(after).To(gomega.Equal(before))
				identity, err := gate.CurrentUser(ctx)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(identity.ID).To(gomega.Equal(int64(4)))
			})

			ginkgo.It("should return false for empty fields", func() {
				ok, err := gate.LogIn(ctx, LoginDTO{Email: "", Password: ""})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("when infrastructure fails", func() {
			ginkgo.It("should return the repository error", func() {
				creds.setError(errors.New("database down"))
				ok, err := gate.LogIn(ctx, LoginDTO{Email: "sales@epic.com", Password: "correct_password"})
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeFalse())
			})

			ginkgo.It("should return the decryption error and write nothing", func() {
				secrets.err = internal.ErrDecryption
				ok, err := gate.LogIn(ctx, LoginDTO{Email: "sales@epic.com", Password: "correct_password"})
				gomega.Expect(errors.Is(err, internal.ErrDecryption)).To(gomega.BeTrue())
				gomega.Expect(ok).To(gomega.BeFalse())
				_, stored := storedToken()
				gomega.Expect(stored).To(gomega.BeFalse())
			})
		})
	})

	ginkgo.Describe("LogOut", func() {
		ginkgo.It("should drop the session", func() {
			_, _ = gate.LogIn(ctx, LoginDTO{Email: "sales@epic.com", Password: "correct_password"})
			gomega.Expect(gate.LogOut(ctx)).To(gomega.Succeed())

			identity, err := gate.CurrentUser(ctx)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(identity).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("CurrentUser and Diagnose", func() {
		ginkgo.It("should report no session when nothing is stored", func() {
			info, err := gate.Diagnose(ctx)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(info.State).To(gomega.Equal(TokenNone))
		})

		ginkgo.It("should treat an expired token as no session", func() {
			_, _ = gate.LogIn(ctx, LoginDTO{Email: "sales@epic.com", Password: "correct_password"})
			now = now.Add(15 * time.Minute)

			identity, err := gate.CurrentUser(ctx)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(identity).To(gomega.BeNil())

			info, err := gate.Diagnose(ctx)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(info.State).To(gomega.Equal(TokenExpired))
		})

		ginkgo.It("should treat a token signed with a rotated secret as no session", func() {
			_, _ = gate.LogIn(ctx, LoginDTO{Email: "sales@epic.com", Password: "correct_password"})
			secrets.secret = []byte("s2-rotated-secret")

			identity, err := gate.CurrentUser(ctx)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(identity).To(gomega.BeNil())

			info, _ := gate.Diagnose(ctx)
			gomega.Expect(info.State).To(gomega.Equal(TokenBadSignature))
		})

		ginkgo.It("should treat a garbage token as no session", func() {
			gomega.Expect(sessions.Set(DefaultTokenKey, "garbage")).To(gomega.Succeed())

			info, err := gate.Diagnose(ctx)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(info.State).To(gomega.Equal(TokenMalformed))
		})

		ginkgo.It("should report the expiry of a valid session", func() {
			_, _ = gate.LogIn(ctx, LoginDTO{Email: "sales@epic.com", Password: "correct_password"})

			info, err := gate.Diagnose(ctx)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(info.State).To(gomega.Equal(TokenValid))
			gomega.Expect(info.ExpiresAt.Equal(now.Add(15 * time.Minute))).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("RequireAuthentication", func() {
		var calls int
		var op Operation

		ginkgo.BeforeEach(func() {
			calls = 0
			op = func(ctx context.Context, p *Principal) error {
				calls++
				return nil
			}
		})

		ginkgo.It("should not invoke the operation without a session", func() {
			err := gate.RequireAuthentication(op)(ctx)
			gomega.Expect(errors.Is(err, internal.ErrNotAuthenticated)).To(gomega.BeTrue())
			gomega.Expect(calls).To(gomega.Equal(0))
		})

		ginkgo.It("should pass the principal explicitly", func() {
			_, _ = gate.LogIn(ctx, LoginDTO{Email: "sales@epic.com", Password: "correct_password"})

			var seen *Principal
			err := gate.RequireAuthentication(func(ctx context.Context, p *Principal) error {
				seen = p
				return nil
			})(ctx)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(seen.ID()).To(gomega.Equal(int64(4)))
			gomega.Expect(seen.Permissions.Has(CreateClient)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("Guard", func() {
		var calls int
		var op Operation

		ginkgo.BeforeEach(func() {
			calls = 0
			op = func(ctx context.Context, p *Principal) error {
				calls++
				return nil
			}
		})

		ginkgo.It("should invoke create_client for sales", func() {
			_, _ = gate.LogIn(ctx, LoginDTO{Email: "sales@epic.com", Password: "correct_password"})
			gomega.Expect(gate.Guard(op, CreateClient)(ctx)).To(gomega.Succeed())
			gomega.Expect(calls).To(gomega.Equal(1))
		})

		ginkgo.It("should invoke create_client for the superuser", func() {
			_, _ = gate.LogIn(ctx, LoginDTO{Email: "admin@epic.com", Password: "correct_password"})
			gomega.Expect(gate.Guard(op, CreateClient)(ctx)).To(gomega.Succeed())
			gomega.Expect(calls).To(gomega.Equal(1))
		})

		ginkgo.It("should never invoke create_client for management", func() {
			_, _ = gate.LogIn(ctx, LoginDTO{Email: "manager@epic.com", Password: "correct_password"})
			err := gate.Guard(op, CreateClient)(ctx)
			gomega.Expect(errors.Is(err, internal.ErrInsufficientPermissions)).To(gomega.BeTrue())
			gomega.Expect(calls).To(gomega.Equal(0))
		})

		ginkgo.It("should never invoke anything without a session", func() {
			err := gate.Guard(op, CreateClient)(ctx)
			gomega.Expect(errors.Is(err, internal.ErrNotAuthenticated)).To(gomega.BeTrue())
			gomega.Expect(calls).To(gomega.Equal(0))
		})
	})
})

var _ = ginkgo.Describe("Permission checker", func() {
	var (
		ctx     context.Context
		checker *PermissionChecker
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		checker = NewPermissionChecker(newMockPermissionRepository(), "Superuser")
	})

	ginkgo.It("should return only the sentinel for the superuser department", func() {
		perms, err := checker.PermissionsFor(ctx, &Identity{ID: 1, DepartmentID: 1})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(perms.Names()).To(gomega.Equal([]string{Superuser}))
	})

	ginkgo.It("should return the department grants otherwise", func() {
		perms, err := checker.PermissionsFor(ctx, &Identity{ID: 7, DepartmentID: 4})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(perms.Names()).To(gomega.Equal([]string{UpdateEvent}))
	})

	ginkgo.It("should require every permission of the set", func() {
		p := &Principal{Identity: &Identity{ID: 4}, Permissions: NewPermissionSet(CreateClient)}
		gomega.Expect(checker.Authorize(ctx, p, CreateClient)).To(gomega.Succeed())
		gomega.Expect(checker.Authorize(ctx, p, CreateClient, DeleteClient)).To(gomega.MatchError(internal.ErrInsufficientPermissions))
	})

	ginkgo.It("should invoke the wrapped operation iff permitted", func() {
		calls := 0
		op := checker.RequirePermissions(CreateClient)(func(ctx context.Context, p *Principal) error {
			calls++
			return nil
		})

		cases := []struct {
			granted []string
			allowed bool
		}{
			{[]string{Superuser}, true},
			{[]string{CreateClient}, true},
			{[]string{CreateClient, UpdateClient}, true},
			{[]string{UpdateClient}, false},
			{nil, false},
		}
		for _, c := range cases {
			before := calls
			err := op(ctx, &Principal{Identity: &Identity{ID: 9}, Permissions: NewPermissionSet(c.granted...)})
			if c.allowed {
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(calls).To(gomega.Equal(before + 1))
			} else {
				gomega.Expect(err).To(gomega.MatchError(internal.ErrInsufficientPermissions))
				gomega.Expect(calls).To(gomega.Equal(before))
			}
		}
	})

	ginkgo.It("should treat a missing principal as unauthenticated", func() {
		gomega.Expect(checker.Authorize(ctx, nil, CreateClient)).To(gomega.MatchError(internal.ErrNotAuthenticated))
	})
})
