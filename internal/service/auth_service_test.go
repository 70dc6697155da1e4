package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillpath_backend/internal/config"
	"skillpath_backend/internal/util"
)

func newAuthService(t *testing.T) (*AuthService, *memUsers) {
	t.Helper()
	_, rdb := newRedis(t)
	users := newMemUsers()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1}}
	return NewAuthService(users, NewTokenDenylist(rdb), cfg), users
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, users := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Email: " Jane@Example.com ", Password: "secret1", FullName: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "jane@example.com", res.User.Email)

	stored, err := users.FindByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password, "password is hashed")

	_, err = svc.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "another1"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	login, err := svc.Login(ctx, "JANE@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
	assert.NotNil(t, login.User.LastLogin)

	claims, err := svc.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "Jane Doe", claims.Name)
}

func TestAuthService_RegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "12345"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.co", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@b.co", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@b.co", "secret1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Email: "a@b.co", Password: "secret1"})
	require.NoError(t, err)
	claims, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, util.ErrTokenRevoked)

	other, err := svc.Login(ctx, "a@b.co", "secret1")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, other.Token)
	assert.NoError(t, err, "other tokens of the user stay valid")
}

func TestAuthService_AuthenticateRejectsForeignToken(t *testing.T) {
	svc, users := newAuthService(t)
	ctx := context.Background()
	res, err := svc.Register(ctx, RegisterInput{Email: "a@b.co", Password: "secret1"})
	require.NoError(t, err)

	u, err := users.FindByID(ctx, res.User.ID)
	require.NoError(t, err)
	token, _, err := util.GenerateJWT(u, "some-other-secret", time.Hour)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, token)
	assert.Error(t, err)
}

func TestAuthService_Me(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Email: "a@b.co", Password: "secret1", FullName: "Ann"})
	require.NoError(t, err)

	u, err := svc.Me(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)

	_, err = svc.Me(ctx, 999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Email: "a@b.co", Password: "secret1"})
	require.NoError(t, err)
	id := res.User.ID

	u, err := svc.UpdateProfile(ctx, id, []byte(`{"resume_data": {"name": "Ann"}, "target_jobs": [{"title": "SRE"}], "learning_progress": null}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Ann"}`, string(u.ResumeData))
	assert.JSONEq(t, `[{"title": "SRE"}]`, string(u.TargetJobs))
	assert.Empty(t, u.LearningProgress, "null leaves the field alone")

	u, err = svc.UpdateProfile(ctx, id, []byte(`{"learning_progress": {"go": 40}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"go": 40}`, string(u.LearningProgress))
	assert.JSONEq(t, `{"name": "Ann"}`, string(u.ResumeData), "other fields are kept")

	for _, body := range []string{``, `{}`, `{"resume_data": null}`, `{"skills_gap_history": []}`} {
		_, err = svc.UpdateProfile(ctx, id, []byte(body))
		assert.ErrorIs(t, err, ErrNoUpdates, body)
	}

	_, err = svc.UpdateProfile(ctx, id, []byte(`{"target_jobs": "SRE"}`))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.UpdateProfile(ctx, 999, []byte(`{"resume_data": {}}`))
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestTokenDenylist_TTL(t *testing.T) {
	mr, rdb := newRedis(t)
	d := NewTokenDenylist(rdb)
	ctx := context.Background()

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Minute))
	require.NoError(t, d.Revoke(ctx, "jti-expired", 0))

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = d.IsRevoked(ctx, "jti-expired")
	require.NoError(t, err)
	assert.False(t, revoked, "already expired tokens are not stored")

	mr.FastForward(2 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
