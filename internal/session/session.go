// Package session manages the authenticated session on top of the
// device key-value store: the token pair, the current user, feature
// flags and the hidden developer-mode switch.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/hoyapp/hoygo/internal/models"
	"github.com/hoyapp/hoygo/internal/store"
)

// Claims are the JWT claims carried by Hoy access tokens. The client
// only decodes them; signature verification is the backend's job.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Taps within this window count toward unlocking developer mode.
const (
	devModeTapWindow = 15 * time.Second
	devModeTapGoal   = 7
)

type devModeState struct {
	Enabled   bool      `json:"enabled"`
	TapCount  int       `json:"tapCount"`
	WindowEnd time.Time `json:"windowEnd"`
}

// Session is safe for concurrent use. Token reads happen on every
// outgoing request, so the pair is cached in memory and written
// through to the store on change.
type Session struct {
	mu      sync.RWMutex
	db      store.KeyValue
	access  string
	refresh string
	user    *models.User
	expired bool
}

// New loads any persisted session state from db.
func New(db store.KeyValue) (*Session, error) {
	s := &Session{db: db}

	if err := db.Get(store.KeyAccessToken, &s.access); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if err := db.Get(store.KeyRefreshToken, &s.refresh); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	var usr models.User
	err := db.Get(store.KeyCurrentUser, &usr)
	switch {
	case err == nil:
		s.user = &usr
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	return s, nil
}

// Store exposes the underlying device key-value store.
func (s *Session) Store() store.KeyValue {
	return s.db
}

// SaveTokens persists a new token pair and clears the expired latch.
func (s *Session) SaveTokens(pair models.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Set(store.KeyAccessToken, pair.AccessToken); err != nil {
		return err
	}
	if err := s.db.Set(store.KeyRefreshToken, pair.RefreshToken); err != nil {
		return err
	}

	s.access = pair.AccessToken
	s.refresh = pair.RefreshToken
	s.expired = false

	return nil
}

// SaveUser persists the current user record.
func (s *Session) SaveUser(usr models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Set(store.KeyCurrentUser, usr); err != nil {
		return err
	}
	s.user = &usr

	return nil
}

// Clear drops the token pair and current user. Feature flags and the
// device ID survive logout.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{store.KeyAccessToken, store.KeyRefreshToken, store.KeyCurrentUser} {
		if err := s.db.Delete(key); err != nil {
			return err
		}
	}

	s.access = ""
	s.refresh = ""
	s.user = nil

	return nil
}

// AccessToken returns the current access token, empty when logged out.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// RefreshToken returns the current refresh token, empty when logged out.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// User returns the persisted current user, or nil when logged out.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	usr := *s.user
	return &usr
}

// LoggedIn reports whether a token pair is present.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access != "" || s.refresh != ""
}

// MarkExpired latches the session as expired after a failed refresh.
// Requests short-circuit until the next successful login.
func (s *Session) MarkExpired() {
	s.mu.Lock()
	s.expired = true
	s.mu.Unlock()
}

// Expired reports whether the expired latch is set.
func (s *Session) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expired
}

// Claims decodes the access token's claims without verifying the
// signature. An empty or malformed token yields an error.
func (s *Session) Claims() (*Claims, error) {
	token := s.AccessToken()
	if token == "" {
		return nil, errors.New("no access token")
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	return claims, nil
}

// ExpiresSoon reports whether the access token expires within leeway.
// Opaque tokens and tokens without an exp claim never expire soon;
// their rejection is only observable through a 401.
func (s *Session) ExpiresSoon(leeway time.Duration) bool {
	claims, err := s.Claims()
	if err != nil || claims.ExpiresAt == nil {
		return false
	}

	return time.Until(claims.ExpiresAt.Time) < leeway
}

// DeviceID returns the stable per-install device identifier,
// generating and persisting one on first use.
func (s *Session) DeviceID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	err := s.db.Get(store.KeyDeviceID, &id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	id = uuid.NewString()
	if err := s.db.Set(store.KeyDeviceID, id); err != nil {
		return "", err
	}

	return id, nil
}

// SetFlag persists a feature flag toggle.
func (s *Session) SetFlag(name string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flags := map[string]bool{}
	if err := s.db.Get(store.KeyFeatureFlags, &flags); err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	flags[name] = enabled

	return s.db.Set(store.KeyFeatureFlags, flags)
}

// Flag reports whether a feature flag is enabled.
func (s *Session) Flag(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flags := map[string]bool{}
	if err := s.db.Get(store.KeyFeatureFlags, &flags); err != nil {
		return false
	}

	return flags[name]
}

// RegisterDevTap records one tap of the hidden developer-mode gesture.
// Seven taps within fifteen seconds enable developer mode. It returns
// whether developer mode is enabled after this tap.
func (s *Session) RegisterDevTap(now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := devModeState{}
	if err := s.db.Get(store.KeyDevMode, &state); err != nil && !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	if state.Enabled {
		return true, nil
	}

	if now.After(state.WindowEnd) {
		state.TapCount = 0
		state.WindowEnd = now.Add(devModeTapWindow)
	}

	state.TapCount++
	if state.TapCount >= devModeTapGoal {
		state.Enabled = true
	}

	if err := s.db.Set(store.KeyDevMode, state); err != nil {
		return false, err
	}

	return state.Enabled, nil
}

// DevMode reports whether developer mode has been unlocked.
func (s *Session) DevMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := devModeState{}
	if err := s.db.Get(store.KeyDevMode, &state); err != nil {
		return false
	}

	return state.Enabled
}
