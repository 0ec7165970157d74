package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoyapp/hoygo/internal/api"
	"github.com/hoyapp/hoygo/internal/config"
	"github.com/hoyapp/hoygo/internal/hoytest"
	"github.com/hoyapp/hoygo/internal/models"
	"github.com/hoyapp/hoygo/internal/services/auth"
	"github.com/hoyapp/hoygo/internal/session"
	"github.com/hoyapp/hoygo/internal/store/memstore"
)

func newService(t *testing.T, srv *hoytest.Server) (*auth.Service, *session.Session) {
	t.Helper()

	cfg, err := config.New(
		config.WithDisableFlagsParsing(true),
		config.WithDisableDotEnv(true),
	)
	require.NoError(t, err)
	cfg.APIBaseURL = srv.URL
	cfg.RetryWaitMin = 10 * time.Millisecond
	cfg.RetryWaitMax = 50 * time.Millisecond

	sess, err := session.New(memstore.New())
	require.NoError(t, err)

	return auth.New(api.New(cfg, sess), sess), sess
}

func TestLogin(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, sess := newService(t, srv)

	usr, err := svc.Login(context.Background(), hoytest.UserEmail, hoytest.UserPassword)
	require.NoError(t, err)

	assert.Equal(t, hoytest.UserEmail, usr.Email)
	assert.True(t, sess.LoggedIn())
	assert.Equal(t, srv.Tokens().AccessToken, sess.AccessToken())
	require.NotNil(t, sess.User())
	assert.Equal(t, usr.ID, sess.User().ID)
}

func TestLoginWrongPassword(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, sess := newService(t, srv)

	_, err := svc.Login(context.Background(), hoytest.UserEmail, "supersecret")
	require.ErrorIs(t, err, api.ErrUnauthorized)
	assert.False(t, sess.LoggedIn())
}

func TestLoginValidatesInput(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, _ := newService(t, srv)

	_, err := svc.Login(context.Background(), "not-an-email", hoytest.UserPassword)
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), hoytest.UserEmail, "short")
	assert.Error(t, err, "passwords shorter than eight characters never reach the network")
}

func TestRegister(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, sess := newService(t, srv)

	usr, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:     "new@hoyapp.dev",
		Password:  "password123",
		FirstName: "Nana",
		LastName:  "Osei",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@hoyapp.dev", usr.Email)
	assert.True(t, sess.LoggedIn())
}

func TestRegisterTakenEmail(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, _ := newService(t, srv)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:     hoytest.UserEmail,
		Password:  "password123",
		FirstName: "Frida",
		LastName:  "Holm",
	})
	assert.ErrorIs(t, err, api.ErrConflict)
}

func TestLoginWithProvider(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, sess := newService(t, srv)

	usr, err := svc.LoginWithProvider(context.Background(), "google", "provider-id-token")
	require.NoError(t, err)

	assert.NotEmpty(t, usr.ID)
	assert.True(t, sess.LoggedIn())

	_, err = svc.LoginWithProvider(context.Background(), "myspace", "provider-id-token")
	assert.Error(t, err, "unknown providers are rejected locally")
}

func TestLogoutClearsSession(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, sess := newService(t, srv)

	_, err := svc.Login(context.Background(), hoytest.UserEmail, hoytest.UserPassword)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))
	assert.False(t, sess.LoggedIn())
	assert.Nil(t, sess.User())
}

func TestResetPassword(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, _ := newService(t, srv)

	require.NoError(t, svc.ForgotPassword(context.Background(), hoytest.UserEmail))

	require.NoError(t, svc.ResetPassword(context.Background(), hoytest.ResetToken, "newpassword1"))

	err := svc.ResetPassword(context.Background(), "bogus-token", "newpassword1")
	assert.Error(t, err)
}

func TestMeRefreshesStoredUser(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, sess := newService(t, srv)

	_, err := svc.Login(context.Background(), hoytest.UserEmail, hoytest.UserPassword)
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), models.UpdateProfileRequest{Phone: "+4520304050"})
	require.NoError(t, err)
	assert.Equal(t, "+4520304050", updated.Phone)

	usr, err := svc.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "+4520304050", usr.Phone)
	assert.Equal(t, "+4520304050", sess.User().Phone)
}
