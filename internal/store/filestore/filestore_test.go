package filestore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoyapp/hoygo/internal/store"
	"github.com/hoyapp/hoygo/internal/store/filestore"
)

func TestSetGetDelete(t *testing.T) {
	fs, err := filestore.New(filepath.Join(t.TempDir(), "hoy.json"))
	require.NoError(t, err)
	defer fs.Close()

	var missing string
	err = fs.Get("nope", &missing)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, fs.Set(store.KeyAccessToken, "access-1"))
	require.NoError(t, fs.Set(store.KeyFeatureFlags, map[string]bool{"new_search": true}))

	var token string
	require.NoError(t, fs.Get(store.KeyAccessToken, &token))
	assert.Equal(t, "access-1", token)

	flags := map[string]bool{}
	require.NoError(t, fs.Get(store.KeyFeatureFlags, &flags))
	assert.True(t, flags["new_search"])

	assert.ElementsMatch(t, []string{store.KeyAccessToken, store.KeyFeatureFlags}, fs.Keys())

	require.NoError(t, fs.Delete(store.KeyAccessToken))
	assert.ErrorIs(t, fs.Get(store.KeyAccessToken, &token), store.ErrNotFound)

	require.NoError(t, fs.Delete("never-existed"))
}

func TestPersistsAcrossReopen(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "hoy.json")

	fs, err := filestore.New(fileName)
	require.NoError(t, err)

	require.NoError(t, fs.Set(store.KeyDeviceID, "device-1"))
	require.NoError(t, fs.Set(store.KeyDevMode, map[string]any{"enabled": true}))
	require.NoError(t, fs.Close())

	reopened, err := filestore.New(fileName)
	require.NoError(t, err)
	defer reopened.Close()

	var id string
	require.NoError(t, reopened.Get(store.KeyDeviceID, &id))
	assert.Equal(t, "device-1", id)

	state := map[string]any{}
	require.NoError(t, reopened.Get(store.KeyDevMode, &state))
	assert.Equal(t, true, state["enabled"])
}
