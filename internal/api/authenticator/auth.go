package authenticator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/curaious/workshophub/internal/config"
	"github.com/curaious/workshophub/internal/services/user"
)

var (
	// ErrTokenMalformed means the bearer token could not be parsed at all.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenExpired means the embedded expiry has passed. Expiry is a hard
	// cutoff against the local clock; no skew allowance.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalidSignature means the token was not signed with our secret.
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
	// ErrUnknownSubject means the token verified but its subject no longer
	// resolves to a user. Outstanding tokens of a deleted account die here.
	ErrUnknownSubject = errors.New("token subject does not resolve to a user")
)

// UserResolver resolves a token subject to a live user record.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// Authenticator mints and verifies bearer tokens, and resolves verified
// tokens to user records. The signing secret is held here and nowhere else.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	users  UserResolver
}

func New(conf *config.Config, users UserResolver) (*Authenticator, error) {
	if conf.JWT_SECRET == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return &Authenticator{
		secret: []byte(conf.JWT_SECRET),
		ttl:    conf.TokenTTL(),
		users:  users,
	}, nil
}

// GenerateToken mints a signed token for the given user. Stateless: nothing
// is persisted, and previously issued tokens stay valid until they expire.
func (a *Authenticator) GenerateToken(userID string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		UserID: userID,
	})

	return token.SignedString(a.secret)
}

// VerifyToken checks signature and expiry and returns the embedded subject.
// Expiry is reported ahead of signature problems so that an expired token is
// always ErrTokenExpired, whatever else is wrong with it.
func (a *Authenticator) VerifyToken(raw string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			// The parser checks the signature before the claims, so an
			// expired token with a bad signature surfaces here. Expiry
			// still wins: peek at the unverified claims.
			if tokenExpired(raw) {
				return "", ErrTokenExpired
			}
			return "", ErrTokenInvalidSignature
		default:
			return "", ErrTokenMalformed
		}
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrTokenMalformed
	}

	return claims.UserID, nil
}

// tokenExpired reports whether the embedded expiry has passed, reading the
// claims without verifying the signature. Only safe for classifying a token
// that has already failed verification.
func tokenExpired(raw string) bool {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}

// Authenticate is the authentication gate: it verifies the bearer token and
// re-reads the subject from the store, so role changes take effect on the
// next request rather than at the next login. A store failure propagates as
// is; it must never pass as anonymous.
func (a *Authenticator) Authenticate(ctx context.Context, raw string) (*user.User, error) {
	userID, err := a.VerifyToken(raw)
	if err != nil {
		return nil, err
	}

	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUnknownSubject
		}
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}

	return u, nil
}
