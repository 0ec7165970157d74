// Package notifications wraps the notification and push-device endpoints.
package notifications

import (
	"context"
	"net/url"
	"strconv"

	validator "github.com/go-playground/validator/v10"

	"github.com/hoyapp/hoygo/internal/api"
	"github.com/hoyapp/hoygo/internal/models"
	"github.com/hoyapp/hoygo/internal/session"
	"github.com/hoyapp/hoygo/internal/store"
)

// Service lists notifications and manages the device push token.
type Service struct {
	client   *api.Client
	session  *session.Session
	validate *validator.Validate
}

// New creates the notification service.
func New(client *api.Client, sess *session.Session) *Service {
	return &Service{
		client:   client,
		session:  sess,
		validate: validator.New(),
	}
}

// List fetches one page of notifications, newest first.
func (s *Service) List(ctx context.Context, page int) (*models.Page[models.Notification], error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	var out models.Page[models.Notification]
	if err := s.client.GetQuery(ctx, "/notifications", query, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UnreadCount returns the number of unseen notifications.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := s.client.Get(ctx, "/notifications/unread-count", &out); err != nil {
		return 0, err
	}

	return out.Count, nil
}

// MarkSeen marks the given notifications as seen.
func (s *Service) MarkSeen(ctx context.Context, ids []string) error {
	req := models.MarkSeenRequest{IDs: ids}
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	return s.client.Post(ctx, "/notifications/seen", req, nil)
}

// MarkAllSeen marks every notification as seen.
func (s *Service) MarkAllSeen(ctx context.Context) error {
	return s.client.Post(ctx, "/notifications/seen-all", nil, nil)
}

// RegisterDevice registers the device push token with the backend and
// remembers it locally so re-registration can be skipped.
func (s *Service) RegisterDevice(ctx context.Context, pushToken, platform string) error {
	deviceID, err := s.session.DeviceID()
	if err != nil {
		return err
	}

	req := models.RegisterDeviceRequest{
		PushToken: pushToken,
		Platform:  platform,
		DeviceID:  deviceID,
	}
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	if err := s.client.Post(ctx, "/notifications/devices", req, nil); err != nil {
		return err
	}

	return s.sessionStore().Set(store.KeyPushToken, pushToken)
}

// UnregisterDevice removes this device's push registration.
func (s *Service) UnregisterDevice(ctx context.Context) error {
	deviceID, err := s.session.DeviceID()
	if err != nil {
		return err
	}

	if err := s.client.Delete(ctx, "/notifications/devices/"+deviceID); err != nil {
		return err
	}

	return s.sessionStore().Delete(store.KeyPushToken)
}

func (s *Service) sessionStore() store.KeyValue {
	return s.session.Store()
}
