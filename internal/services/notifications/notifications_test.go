package notifications_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoyapp/hoygo/internal/api"
	"github.com/hoyapp/hoygo/internal/config"
	"github.com/hoyapp/hoygo/internal/hoytest"
	"github.com/hoyapp/hoygo/internal/services/notifications"
	"github.com/hoyapp/hoygo/internal/session"
	"github.com/hoyapp/hoygo/internal/store"
	"github.com/hoyapp/hoygo/internal/store/memstore"
)

func newService(t *testing.T, srv *hoytest.Server) (*notifications.Service, *session.Session) {
	t.Helper()

	cfg, err := config.New(
		config.WithDisableFlagsParsing(true),
		config.WithDisableDotEnv(true),
	)
	require.NoError(t, err)
	cfg.APIBaseURL = srv.URL

	sess, err := session.New(memstore.New())
	require.NoError(t, err)
	require.NoError(t, sess.SaveTokens(srv.Tokens()))

	return notifications.New(api.New(cfg, sess), sess), sess
}

func TestListAndUnreadCount(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, _ := newService(t, srv)

	page, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "ntf-2", page.Items[0].ID, "newest first")

	count, err := svc.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMarkSeen(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, _ := newService(t, srv)

	require.NoError(t, svc.MarkSeen(context.Background(), []string{"ntf-2"}))

	count, err := svc.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.Error(t, svc.MarkSeen(context.Background(), nil), "an empty ID list never reaches the network")
}

func TestMarkAllSeen(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, _ := newService(t, srv)

	require.NoError(t, svc.MarkAllSeen(context.Background()))

	count, err := svc.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeviceRegistration(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, sess := newService(t, srv)

	require.NoError(t, svc.RegisterDevice(context.Background(), "push-token-1", "ios"))

	deviceID, err := sess.DeviceID()
	require.NoError(t, err)
	assert.Equal(t, "push-token-1", srv.Devices()[deviceID])

	var stored string
	require.NoError(t, sess.Store().Get(store.KeyPushToken, &stored))
	assert.Equal(t, "push-token-1", stored)

	require.NoError(t, svc.UnregisterDevice(context.Background()))
	assert.Empty(t, srv.Devices())
	assert.ErrorIs(t, sess.Store().Get(store.KeyPushToken, &stored), store.ErrNotFound)
}

func TestRegisterDeviceRejectsUnknownPlatform(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc, _ := newService(t, srv)

	assert.Error(t, svc.RegisterDevice(context.Background(), "push-token-1", "blackberry"))
}
