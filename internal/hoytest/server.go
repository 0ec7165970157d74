// Package hoytest runs an in-process fake of the Hoy backend for
// tests: the REST surface with canned fixtures plus the realtime
// websocket endpoint with an on-demand push hook.
package hoytest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/hoyapp/hoygo/internal/models"
)

// Fixed test credentials accepted by the login endpoint.
const (
	UserEmail    = "guest@hoyapp.dev"
	UserPassword = "password123"
	ResetToken   = "reset-me"
)

type plannedFailure struct {
	status    int
	remaining int
}

// Server is the fake backend. Zero coordination with real
// infrastructure: all state lives in memory and dies with the test.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	tokenSerial   int
	accessToken   string
	refreshToken  string
	refreshDead   bool
	user          models.User
	conversations []models.Conversation
	messages      map[string][]models.Message
	byClientID    map[string]models.Message
	notifications []models.Notification
	properties    map[string]models.Property
	devices       map[string]string
	failures      map[string]*plannedFailure
	wsConns       map[*websocket.Conn]bool

	refreshCalls   atomic.Int64
	refreshDelay   atomic.Int64
	authRejections atomic.Int64
	emitted        chan Emitted
}

// Emitted is one event a client sent over the websocket.
type Emitted struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

var upgrader = websocket.Upgrader{}

// New starts the fake backend. Callers must Close it.
func New() *Server {
	s := &Server{
		messages:   map[string][]models.Message{},
		byClientID: map[string]models.Message{},
		properties: map[string]models.Property{},
		devices:    map[string]string{},
		failures:   map[string]*plannedFailure{},
		wsConns:    map[*websocket.Conn]bool{},
		emitted:    make(chan Emitted, 64),
	}
	s.user = models.User{
		ID:        "user-1",
		Email:     UserEmail,
		FirstName: "Frida",
		LastName:  "Holm",
		IsHost:    true,
		CreatedAt: time.Now().Add(-90 * 24 * time.Hour).UTC(),
	}
	s.rotateLocked()
	s.seed()

	s.Server = httptest.NewServer(s.router())

	return s
}

func (s *Server) seed() {
	now := time.Now().UTC()
	peer := models.User{ID: "user-2", Email: "host@hoyapp.dev", FirstName: "Jonas", LastName: "Berg", IsHost: true}

	msg := models.Message{
		ID:             "msg-1",
		ConversationID: "conv-1",
		SenderID:       peer.ID,
		Body:           "Hi! The apartment is available that weekend.",
		CreatedAt:      now.Add(-time.Hour),
	}
	s.messages["conv-1"] = []models.Message{msg}
	s.conversations = []models.Conversation{{
		ID:          "conv-1",
		Peer:        peer,
		PropertyID:  "prop-1",
		LastMessage: &msg,
		UnreadCount: 1,
		UpdatedAt:   msg.CreatedAt,
	}}

	s.notifications = []models.Notification{
		{ID: "ntf-2", Type: "booking", Title: "Booking confirmed", CreatedAt: now.Add(-10 * time.Minute)},
		{ID: "ntf-1", Type: "message", Title: "New message", Seen: true, CreatedAt: now.Add(-2 * time.Hour)},
	}

	s.properties["prop-1"] = models.Property{
		ID:            "prop-1",
		HostID:        s.user.ID,
		Title:         "Harbour loft",
		Type:          "apartment",
		City:          "Copenhagen",
		CountryCode:   "DK",
		PricePerNight: 120,
		Currency:      "EUR",
		MaxGuests:     3,
		Bedrooms:      1,
		Beds:          2,
		Bathrooms:     1,
		Published:     true,
		CreatedAt:     now.Add(-30 * 24 * time.Hour),
		UpdatedAt:     now.Add(-24 * time.Hour),
	}
}

// rotateLocked issues a new token pair. Callers hold s.mu.
func (s *Server) rotateLocked() models.TokenPair {
	s.tokenSerial++
	s.accessToken = fmt.Sprintf("access-%d", s.tokenSerial)
	s.refreshToken = fmt.Sprintf("refresh-%d", s.tokenSerial)

	return models.TokenPair{AccessToken: s.accessToken, RefreshToken: s.refreshToken}
}

// ExpireAccessToken invalidates the current access token while keeping
// the refresh token valid, so the next authenticated request 401s.
func (s *Server) ExpireAccessToken() {
	s.mu.Lock()
	s.accessToken = "expired-" + s.accessToken
	s.mu.Unlock()
}

// RevokeRefreshToken makes every subsequent refresh call fail with 401.
func (s *Server) RevokeRefreshToken() {
	s.mu.Lock()
	s.refreshDead = true
	s.mu.Unlock()
}

// SetRefreshDelay makes the refresh endpoint sleep, widening the race
// window for single-flight tests.
func (s *Server) SetRefreshDelay(d time.Duration) {
	s.refreshDelay.Store(int64(d))
}

// RefreshCalls reports how many times /auth/refresh was hit.
func (s *Server) RefreshCalls() int64 {
	return s.refreshCalls.Load()
}

// AuthRejections reports how many authenticated requests carried a
// stale or missing access token.
func (s *Server) AuthRejections() int64 {
	return s.authRejections.Load()
}

// Tokens returns the currently valid pair.
func (s *Server) Tokens() models.TokenPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.TokenPair{AccessToken: s.accessToken, RefreshToken: s.refreshToken}
}

// FailTimes makes the next n requests to path answer with status.
func (s *Server) FailTimes(path string, n, status int) {
	s.mu.Lock()
	s.failures[path] = &plannedFailure{status: status, remaining: n}
	s.mu.Unlock()
}

// Push broadcasts one realtime event to every connected socket client.
func (s *Server) Push(event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(Emitted{Event: event, Payload: raw})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.wsConns {
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			delete(s.wsConns, conn)
		}
	}

	return nil
}

// DropSocketClients force-closes every websocket connection, so
// clients exercise their reconnect path.
func (s *Server) DropSocketClients() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.wsConns {
		_ = conn.Close()
		delete(s.wsConns, conn)
	}
}

// SocketClientCount returns the number of connected socket clients.
func (s *Server) SocketClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wsConns)
}

// EmittedEvents exposes the events clients sent over the socket.
func (s *Server) EmittedEvents() <-chan Emitted {
	return s.emitted
}

// WSURL returns the websocket endpoint in ws:// form.
func (s *Server) WSURL() string {
	return "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) plannedFailure(w http.ResponseWriter, r *http.Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.failures[r.URL.Path]
	if !ok || f.remaining == 0 {
		return false
	}
	f.remaining--

	writeError(w, f.status, "planned_failure", "injected by test")
	return true
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		s.mu.Lock()
		valid := token != "" && token == s.accessToken
		s.mu.Unlock()

		if !valid {
			s.authRejections.Add(1)
			writeError(w, http.StatusUnauthorized, "token_expired", "access token expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if s.plannedFailure(w, req) {
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/social", s.handleSocial)
	r.Post("/auth/refresh", s.handleRefresh)
	r.Post("/auth/forgot-password", s.handleNoContent)
	r.Post("/auth/reset-password", s.handleResetPassword)
	r.Get("/ws", s.handleWS)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Post("/auth/logout", s.handleNoContent)
		r.Get("/auth/me", s.handleMe)
		r.Put("/auth/me", s.handleUpdateMe)
		r.Post("/auth/password", s.handleNoContent)

		r.Get("/messages/conversations", s.handleConversations)
		r.Get("/messages/conversations/{id}", s.handleMessages)
		r.Post("/messages/conversations/{id}", s.handleSend)
		r.Post("/messages/conversations/{id}/read", s.handleMarkRead)
		r.Post("/messages/conversations/{id}/typing", s.handleNoContent)

		r.Get("/notifications", s.handleNotifications)
		r.Get("/notifications/unread-count", s.handleUnreadCount)
		r.Post("/notifications/seen", s.handleMarkSeen)
		r.Post("/notifications/seen-all", s.handleMarkAllSeen)
		r.Post("/notifications/devices", s.handleRegisterDevice)
		r.Delete("/notifications/devices/{id}", s.handleUnregisterDevice)

		r.Get("/properties/mine", s.handleMyProperties)
		r.Get("/properties/search", s.handleSearch)
		r.Get("/properties/{id}", s.handleGetProperty)
		r.Post("/properties", s.handleCreateProperty)
		r.Put("/properties/{id}", s.handleUpdateProperty)
		r.Delete("/properties/{id}", s.handleDeleteProperty)
		r.Post("/properties/{id}/publish", s.handlePublish)

		r.Post("/upload/image", s.handleUpload)
		r.Post("/upload/property/{id}", s.handleUpload)
	})

	return r
}

func (s *Server) authResponseLocked() models.AuthResponse {
	return models.AuthResponse{
		TokenPair: models.TokenPair{AccessToken: s.accessToken, RefreshToken: s.refreshToken},
		User:      s.user,
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Email != s.user.Email || req.Password != UserPassword {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "wrong email or password")
		return
	}

	s.rotateLocked()
	s.refreshDead = false
	writeJSON(w, http.StatusOK, s.authResponseLocked())
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Email == s.user.Email {
		writeError(w, http.StatusConflict, "email_taken", "email already registered")
		return
	}

	s.user = models.User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: time.Now().UTC(),
	}
	s.rotateLocked()
	writeJSON(w, http.StatusCreated, s.authResponseLocked())
}

func (s *Server) handleSocial(w http.ResponseWriter, r *http.Request) {
	var req models.SocialLoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.IDToken == "" {
		writeError(w, http.StatusUnauthorized, "invalid_token", "provider token rejected")
		return
	}

	s.rotateLocked()
	writeJSON(w, http.StatusOK, s.authResponseLocked())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.refreshCalls.Add(1)

	if d := time.Duration(s.refreshDelay.Load()); d > 0 {
		time.Sleep(d)
	}

	var req models.RefreshRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshDead || req.RefreshToken != s.refreshToken {
		writeError(w, http.StatusUnauthorized, "refresh_rejected", "refresh token revoked")
		return
	}

	writeJSON(w, http.StatusOK, s.rotateLocked())
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := decode(r, &req); err != nil || req.Token != ResetToken {
		writeError(w, http.StatusBadRequest, "invalid_reset_token", "unknown reset token")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNoContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.user)
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.FirstName != "" {
		s.user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		s.user.LastName = req.LastName
	}
	if req.Phone != "" {
		s.user.Phone = req.Phone
	}
	if req.CountryCode != "" {
		s.user.CountryCode = req.CountryCode
	}
	if req.AvatarURL != "" {
		s.user.AvatarURL = req.AvatarURL
	}

	writeJSON(w, http.StatusOK, s.user)
}

func (s *Server) handleConversations(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.conversations)
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, ok := s.messages[id]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown conversation")
		return
	}

	writeJSON(w, http.StatusOK, models.Page[models.Message]{
		Items:      msgs,
		PageNumber: 1,
		TotalCount: len(msgs),
	})
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.SendMessageRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byClientID[req.ClientID]; ok {
		writeJSON(w, http.StatusOK, existing)
		return
	}

	msg := models.Message{
		ID:             uuid.NewString(),
		ClientID:       req.ClientID,
		ConversationID: id,
		SenderID:       s.user.ID,
		Body:           req.Body,
		CreatedAt:      time.Now().UTC(),
	}
	s.messages[id] = append(s.messages[id], msg)
	s.byClientID[req.ClientID] = msg

	for i := range s.conversations {
		if s.conversations[i].ID == id {
			msgCopy := msg
			s.conversations[i].LastMessage = &msgCopy
			s.conversations[i].UpdatedAt = msg.CreatedAt
		}
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	for i := range s.conversations {
		if s.conversations[i].ID == id {
			s.conversations[i].UnreadCount = 0
		}
	}
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNotifications(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.Page[models.Notification]{
		Items:      s.notifications,
		PageNumber: 1,
		TotalCount: len(s.notifications),
	})
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.notifications {
		if !n.Seen {
			count++
		}
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (s *Server) handleMarkSeen(w http.ResponseWriter, r *http.Request) {
	var req models.MarkSeenRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	s.mu.Lock()
	for i := range s.notifications {
		for _, id := range req.IDs {
			if s.notifications[i].ID == id {
				s.notifications[i].Seen = true
			}
		}
	}
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkAllSeen(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].Seen = true
	}
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterDeviceRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	s.mu.Lock()
	s.devices[req.DeviceID] = req.PushToken
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnregisterDevice(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.devices, chi.URLParam(r, "id"))
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

// Devices returns the registered push tokens by device ID.
func (s *Server) Devices() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.devices))
	for k, v := range s.devices {
		out[k] = v
	}
	return out
}

func (s *Server) handleMyProperties(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Property{}
	for _, p := range s.properties {
		if p.HostID == s.user.ID {
			out = append(out, p)
		}
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown property")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	var req models.PropertyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	p := models.Property{
		ID:            uuid.NewString(),
		HostID:        s.user.ID,
		Title:         req.Title,
		Description:   req.Description,
		Type:          req.Type,
		Address:       req.Address,
		City:          req.City,
		CountryCode:   req.CountryCode,
		PricePerNight: req.PricePerNight,
		Currency:      req.Currency,
		MaxGuests:     req.MaxGuests,
		Bedrooms:      req.Bedrooms,
		Beds:          req.Beds,
		Bathrooms:     req.Bathrooms,
		Photos:        req.Photos,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.properties[p.ID] = p

	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.PropertyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[id]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown property")
		return
	}

	p.Title = req.Title
	p.Description = req.Description
	p.Type = req.Type
	p.Address = req.Address
	p.City = req.City
	p.CountryCode = req.CountryCode
	p.PricePerNight = req.PricePerNight
	p.Currency = req.Currency
	p.MaxGuests = req.MaxGuests
	p.Bedrooms = req.Bedrooms
	p.Beds = req.Beds
	p.Bathrooms = req.Bathrooms
	p.Photos = req.Photos
	p.UpdatedAt = time.Now().UTC()
	s.properties[id] = p

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.properties, chi.URLParam(r, "id"))
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Published bool `json:"published"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[id]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown property")
		return
	}
	p.Published = req.Published
	s.properties[id] = p

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Property{}
	for _, p := range s.properties {
		if !p.Published {
			continue
		}
		if city := query.Get("city"); city != "" && !strings.EqualFold(city, p.City) {
			continue
		}
		if country := query.Get("country"); country != "" && !strings.EqualFold(country, p.CountryCode) {
			continue
		}
		if guests, _ := strconv.Atoi(query.Get("guests")); guests > 0 && p.MaxGuests < guests {
			continue
		}
		if minPrice, _ := strconv.ParseFloat(query.Get("minPrice"), 64); minPrice > 0 && p.PricePerNight < minPrice {
			continue
		}
		if maxPrice, _ := strconv.ParseFloat(query.Get("maxPrice"), 64); maxPrice > 0 && p.PricePerNight > maxPrice {
			continue
		}
		out = append(out, p)
	}

	writeJSON(w, http.StatusOK, models.Page[models.Property]{
		Items:      out,
		PageNumber: page,
		TotalCount: len(out),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	defer file.Close()

	n, err := io.Copy(io.Discard, file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, models.UploadResult{
		URL:      s.URL + "/media/" + header.Filename,
		PublicID: uuid.NewString(),
		Bytes:    n,
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	s.mu.Lock()
	valid := token == s.accessToken
	s.mu.Unlock()

	if !valid {
		writeError(w, http.StatusUnauthorized, "token_expired", "access token expired")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.wsConns[conn] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.wsConns, conn)
			s.mu.Unlock()
			_ = conn.Close()
		}()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var ev Emitted
			if err := json.Unmarshal(data, &ev); err != nil {
				continue
			}

			select {
			case s.emitted <- ev:
			default:
			}
		}
	}()
}
