package upload_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoyapp/hoygo/internal/api"
	"github.com/hoyapp/hoygo/internal/config"
	"github.com/hoyapp/hoygo/internal/hoytest"
	"github.com/hoyapp/hoygo/internal/services/upload"
	"github.com/hoyapp/hoygo/internal/session"
	"github.com/hoyapp/hoygo/internal/store/memstore"
)

// Smallest valid PNG header, enough for content-type sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newService(t *testing.T, srv *hoytest.Server) *upload.Service {
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

	return upload.New(api.New(cfg, sess))
}

func TestImage(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc := newService(t, srv)

	res, err := svc.Image(context.Background(), "photo.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.Contains(t, res.URL, "photo.png")
	assert.NotEmpty(t, res.PublicID)
	assert.Equal(t, int64(len(pngHeader)), res.Bytes)
}

func TestPropertyPhoto(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc := newService(t, srv)

	res, err := svc.PropertyPhoto(context.Background(), "prop-1", "loft.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Contains(t, res.URL, "loft.png")
}

func TestPropertyPhotos(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc := newService(t, srv)

	results, err := svc.PropertyPhotos(context.Background(), "prop-1", []upload.File{
		{Name: "front.png", Data: bytes.NewReader(pngHeader)},
		{Name: "kitchen.png", Data: bytes.NewReader(pngHeader)},
	})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Contains(t, results[0].URL, "front.png")
	assert.Contains(t, results[1].URL, "kitchen.png")
}

func TestPropertyPhotosStopsAtFirstFailure(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc := newService(t, srv)

	results, err := svc.PropertyPhotos(context.Background(), "prop-1", []upload.File{
		{Name: "front.png", Data: bytes.NewReader(pngHeader)},
		{Name: "broken.png", Data: bytes.NewReader(nil)},
		{Name: "kitchen.png", Data: bytes.NewReader(pngHeader)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.png")

	require.Len(t, results, 1, "files uploaded before the failure are reported")
	assert.Contains(t, results[0].URL, "front.png")
}

func TestRejectsEmptyFile(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc := newService(t, srv)

	_, err := svc.Image(context.Background(), "empty.png", bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestRejectsOversizedFile(t *testing.T) {
	srv := hoytest.New()
	defer srv.Close()

	svc := newService(t, srv)

	huge := strings.NewReader(strings.Repeat("x", upload.MaxImageBytes+1))
	_, err := svc.Image(context.Background(), "huge.bin", huge)
	assert.ErrorIs(t, err, upload.ErrTooLarge)
}
