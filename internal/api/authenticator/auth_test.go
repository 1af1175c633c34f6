package authenticator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curaious/workshophub/internal/config"
	"github.com/curaious/workshophub/internal/services/user"
)

type fakeResolver struct {
	users map[string]*user.User
	err   error
}

func (f *fakeResolver) GetByID(_ context.Context, id string) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func newTestAuthenticator(t *testing.T, secret string, ttlHours int, resolver UserResolver) *Authenticator {
	t.Helper()

	auth, err := New(&config.Config{JWT_SECRET: secret, TOKEN_TTL_HOURS: ttlHours}, resolver)
	require.NoError(t, err)
	return auth
}

func TestNewRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := New(&config.Config{JWT_SECRET: ""}, &fakeResolver{})
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	auth := newTestAuthenticator(t, "secret", 1, &fakeResolver{})

	token, err := auth.GenerateToken("user-123")
	require.NoError(t, err)

	subject, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	t.Parallel()

	auth := newTestAuthenticator(t, "secret", -1, &fakeResolver{})

	token, err := auth.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = auth.VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	minter := newTestAuthenticator(t, "secret-a", 1, &fakeResolver{})
	verifier := newTestAuthenticator(t, "secret-b", 1, &fakeResolver{})

	token, err := minter.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalidSignature)
}

func TestVerifyExpiredTokenWithWrongSecret(t *testing.T) {
	t.Parallel()

	minter := newTestAuthenticator(t, "secret-a", -1, &fakeResolver{})
	verifier := newTestAuthenticator(t, "secret-b", 1, &fakeResolver{})

	token, err := minter.GenerateToken("user-123")
	require.NoError(t, err)

	// Expiry is reported even when the signature does not check out.
	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyMalformedToken(t *testing.T) {
	t.Parallel()

	auth := newTestAuthenticator(t, "secret", 1, &fakeResolver{})

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := auth.VerifyToken(raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", raw)
	}
}

func TestConcurrentTokensStayValid(t *testing.T) {
	t.Parallel()

	auth := newTestAuthenticator(t, "secret", 1, &fakeResolver{})

	first, err := auth.GenerateToken("user-123")
	require.NoError(t, err)
	second, err := auth.GenerateToken("user-123")
	require.NoError(t, err)

	// Minting a new token does not revoke previously issued ones.
	for _, token := range []string{first, second} {
		subject, err := auth.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", subject)
	}
}

func TestAuthenticateResolvesSubject(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{users: map[string]*user.User{
		"user-123": {ID: "user-123", Email: "a@example.com", Role: user.RoleUser},
	}}
	auth := newTestAuthenticator(t, "secret", 1, resolver)

	token, err := auth.GenerateToken("user-123")
	require.NoError(t, err)

	u, err := auth.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", u.ID)
}

func TestAuthenticateDeletedUser(t *testing.T) {
	t.Parallel()

	auth := newTestAuthenticator(t, "secret", 1, &fakeResolver{})

	token, err := auth.GenerateToken("gone")
	require.NoError(t, err)

	// A valid token whose subject no longer exists must not authenticate.
	_, err = auth.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnknownSubject)
}

func TestAuthenticateStoreFailure(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	auth := newTestAuthenticator(t, "secret", 1, &fakeResolver{err: storeErr})

	token, err := auth.GenerateToken("user-123")
	require.NoError(t, err)

	// A store failure must propagate, never pass as anonymous or as a
	// token problem.
	_, err = auth.Authenticate(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrUnknownSubject)
}

func TestAuthenticateLiveRole(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{users: map[string]*user.User{
		"user-123": {ID: "user-123", Role: user.RoleUser},
	}}
	auth := newTestAuthenticator(t, "secret", 1, resolver)

	token, err := auth.GenerateToken("user-123")
	require.NoError(t, err)

	// Role changes between requests take effect on the next authentication,
	// not at the next login.
	resolver.users["user-123"].Role = user.RoleAdmin

	u, err := auth.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, u.Role)
}
