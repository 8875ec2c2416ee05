package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultAccessTokenTTL = 15 * time.Minute

// TokenError tells apart the reasons a token is rejected. Callers treat every
// reason as "no session"; the reason only drives diagnostics.
type TokenError struct {
	Reason TokenState
	Err    error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid token (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid token (%s)", e.Reason)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

func (e *TokenError) Is(target error) bool {
	t, ok := target.(*TokenError)
	return ok && t.Reason == e.Reason
}

var (
	ErrTokenExpired   = &TokenError{Reason: TokenExpired}
	ErrTokenSignature = &TokenError{Reason: TokenBadSignature}
	ErrTokenMalformed = &TokenError{Reason: TokenMalformed}
)

// JWTTokenGenerator signs HS256 tokens with the secret fetched on every call,
// so a rotated secret invalidates outstanding tokens.
type JWTTokenGenerator struct {
	secrets SecretProvider
	ttl     time.Duration
	now     func() time.Time
}

func NewJWTTokenGenerator(secrets SecretProvider, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return &JWTTokenGenerator{
		secrets: secrets,
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock replaces the time source.
func (j *JWTTokenGenerator) WithClock(now func() time.Time) *JWTTokenGenerator {
	j.now = now
	return j
}

func (j *JWTTokenGenerator) Issue(ctx context.Context, identity *Identity) (string, error) {
	secret, err := j.secrets.SigningSecret(ctx)
	if err != nil {
		return "", err
	}

	claims := &Claims{
		DepartmentID: identity.DepartmentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			ExpiresAt: jwt.NewNumericDate(expiry(j.now(), j.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// expiry rounds up to the second exp is encoded with, so the token never
// expires before issuedAt+ttl.
func expiry(issuedAt time.Time, ttl time.Duration) time.Time {
	exp := issuedAt.Add(ttl)
	if whole := exp.Truncate(time.Second); !whole.Equal(exp) {
		return whole.Add(time.Second)
	}
	return exp
}

// Validate verifies the signature first, then the expiry. Failures are *TokenError;
// any other error comes from the secret provider.
func (j *JWTTokenGenerator) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	secret, err := j.secrets.SigningSecret(ctx)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, &TokenError{Reason: TokenBadSignature, Err: err}
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, &TokenError{Reason: TokenExpired, Err: err}
		default:
			return nil, &TokenError{Reason: TokenMalformed, Err: err}
		}
	}

	if !token.Valid {
		return nil, &TokenError{Reason: TokenMalformed}
	}
	if _, err := claims.EmployeeID(); err != nil {
		return nil, &TokenError{Reason: TokenMalformed, Err: err}
	}

	return claims, nil
}

// EmployeeID parses the subject claim.
func (c *Claims) EmployeeID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid subject %q", c.Subject)
	}
	return id, nil
}
