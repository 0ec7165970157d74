// Package store defines the device-local key-value storage used for
// tokens, feature flags and other small pieces of client state.
package store

import "errors"

// Well-known keys. Values are JSON-encoded.
const (
	KeyAccessToken  = "auth.accessToken"
	KeyRefreshToken = "auth.refreshToken"
	KeyCurrentUser  = "auth.currentUser"
	KeyPushToken    = "push.token"
	KeyDeviceID     = "device.id"
	KeyFeatureFlags = "flags"
	KeyDevMode      = "devMode"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// KeyValue is the device storage contract. Implementations must be
// safe for concurrent use.
type KeyValue interface {
	// Get decodes the value stored under key into out.
	// It returns ErrNotFound when the key is absent.
	Get(key string, out any) error

	// Set stores value under key, replacing any previous value.
	Set(key string, value any) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Keys returns all stored keys.
	Keys() []string

	// Close flushes pending writes and releases resources.
	Close() error
}
