// Package messages wraps the conversation and chat endpoints.
package messages

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/hoyapp/hoygo/internal/api"
	"github.com/hoyapp/hoygo/internal/models"
	"github.com/hoyapp/hoygo/internal/socket"
)

// Service is the messageService of the client. When the realtime
// socket is connected, typing indicators go over it; everything else
// is plain REST.
type Service struct {
	client   *api.Client
	sock     *socket.Service
	validate *validator.Validate
}

// New creates the message service. sock may be nil; typing then falls
// back to the REST endpoint.
func New(client *api.Client, sock *socket.Service) *Service {
	return &Service{
		client:   client,
		sock:     sock,
		validate: validator.New(),
	}
}

// Conversations lists the current user's conversations, most recently
// active first.
func (s *Service) Conversations(ctx context.Context) ([]models.Conversation, error) {
	var out []models.Conversation
	if err := s.client.Get(ctx, "/messages/conversations", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Messages fetches one page of a conversation, newest first.
func (s *Service) Messages(ctx context.Context, conversationID string, page int) (*models.Page[models.Message], error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	var out models.Page[models.Message]
	path := fmt.Sprintf("/messages/conversations/%s", conversationID)
	if err := s.client.GetQuery(ctx, path, query, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Send posts a message. A client-generated UUID rides along so the
// backend can deduplicate resends of the same message.
func (s *Service) Send(ctx context.Context, conversationID, body string) (*models.Message, error) {
	req := models.SendMessageRequest{
		ClientID: uuid.NewString(),
		Body:     body,
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var out models.Message
	path := fmt.Sprintf("/messages/conversations/%s", conversationID)
	if err := s.client.Post(ctx, path, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// MarkRead marks every message in the conversation as read.
func (s *Service) MarkRead(ctx context.Context, conversationID string) error {
	path := fmt.Sprintf("/messages/conversations/%s/read", conversationID)
	return s.client.Post(ctx, path, nil, nil)
}

// Typing reports the typing state. It prefers the realtime channel
// and falls back to REST when the socket is down.
func (s *Service) Typing(ctx context.Context, conversationID string, typing bool) error {
	payload := models.TypingRequest{ConversationID: conversationID, Typing: typing}

	if s.sock != nil && s.sock.State() == socket.Connected {
		return s.sock.Emit(models.EventTyping, payload)
	}

	path := fmt.Sprintf("/messages/conversations/%s/typing", conversationID)
	return s.client.Post(ctx, path, payload, nil)
}
