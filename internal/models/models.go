// Package models defines the request and response types exchanged
// with the Hoy backend over its REST and realtime interfaces.
package models

import "time"

// User is the account record returned by the backend.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Phone       string    `json:"phone,omitempty"`
	CountryCode string    `json:"countryCode,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	IsHost      bool      `json:"isHost"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TokenPair is the credential pair issued on login and rotated on refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned by login, register and social exchange.
type AuthResponse struct {
	TokenPair
	User User `json:"user"`
}

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// SocialLoginRequest exchanges an identity-provider token for a Hoy session.
type SocialLoginRequest struct {
	Provider string `json:"provider" validate:"required,oneof=auth0 google apple facebook"`
	IDToken  string `json:"idToken" validate:"required"`
}

// RefreshRequest is the payload for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes the password reset flow.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ChangePasswordRequest is the payload for POST /auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// UpdateProfileRequest is the payload for PUT /auth/me. Zero-value
// fields are omitted and left unchanged by the backend.
type UpdateProfileRequest struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CountryCode string `json:"countryCode,omitempty" validate:"omitempty,len=2"`
	AvatarURL   string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
}

// Message is a single chat message inside a conversation.
type Message struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"clientId,omitempty"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Body           string    `json:"body"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Conversation is a chat thread between the current user and a peer.
type Conversation struct {
	ID          string    `json:"id"`
	Peer        User      `json:"peer"`
	PropertyID  string    `json:"propertyId,omitempty"`
	LastMessage *Message  `json:"lastMessage,omitempty"`
	UnreadCount int       `json:"unreadCount"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SendMessageRequest is the payload for POST /messages/conversations/{id}.
// ClientID is generated locally so resends of the same message can be
// deduplicated by the backend.
type SendMessageRequest struct {
	ClientID string `json:"clientId" validate:"required,uuid4"`
	Body     string `json:"body" validate:"required,max=4000"`
}

// TypingRequest reports typing state inside a conversation.
type TypingRequest struct {
	ConversationID string `json:"conversationId"`
	Typing         bool   `json:"typing"`
}

// Notification is a push/in-app notification record.
type Notification struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	Seen      bool              `json:"seen"`
	CreatedAt time.Time         `json:"createdAt"`
}

// MarkSeenRequest marks the given notifications as seen.
type MarkSeenRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// RegisterDeviceRequest registers a device push token with the backend.
type RegisterDeviceRequest struct {
	PushToken string `json:"pushToken" validate:"required"`
	Platform  string `json:"platform" validate:"required,oneof=ios android"`
	DeviceID  string `json:"deviceId" validate:"required"`
}

// Property is a host listing.
type Property struct {
	ID            string    `json:"id"`
	HostID        string    `json:"hostId"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city"`
	CountryCode   string    `json:"countryCode"`
	PricePerNight float64   `json:"pricePerNight"`
	Currency      string    `json:"currency"`
	MaxGuests     int       `json:"maxGuests"`
	Bedrooms      int       `json:"bedrooms"`
	Beds          int       `json:"beds"`
	Bathrooms     int       `json:"bathrooms"`
	Photos        []string  `json:"photos,omitempty"`
	Published     bool      `json:"published"`
	Rating        float64   `json:"rating,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PropertyRequest is the payload for creating or updating a listing.
type PropertyRequest struct {
	Title         string   `json:"title" validate:"required,max=120"`
	Description   string   `json:"description,omitempty" validate:"max=4000"`
	Type          string   `json:"type" validate:"required,oneof=apartment house room cabin boat other"`
	Address       string   `json:"address,omitempty"`
	City          string   `json:"city" validate:"required"`
	CountryCode   string   `json:"countryCode" validate:"required,len=2"`
	PricePerNight float64  `json:"pricePerNight" validate:"required,gt=0"`
	Currency      string   `json:"currency" validate:"required,len=3"`
	MaxGuests     int      `json:"maxGuests" validate:"required,min=1,max=32"`
	Bedrooms      int      `json:"bedrooms" validate:"min=0"`
	Beds          int      `json:"beds" validate:"min=0"`
	Bathrooms     int      `json:"bathrooms" validate:"min=0"`
	Photos        []string `json:"photos,omitempty" validate:"dive,url"`
}

// PropertySearch holds the filters for GET /properties/search.
type PropertySearch struct {
	Query       string  `json:"query,omitempty"`
	City        string  `json:"city,omitempty"`
	CountryCode string  `json:"countryCode,omitempty"`
	MinPrice    float64 `json:"minPrice,omitempty"`
	MaxPrice    float64 `json:"maxPrice,omitempty"`
	Guests      int     `json:"guests,omitempty"`
	Page        int     `json:"page,omitempty"`
}

// UploadResult describes a file accepted by the upload endpoint.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Bytes    int64  `json:"bytes,omitempty"`
}

// Page wraps paginated list responses.
type Page[T any] struct {
	Items      []T  `json:"items"`
	PageNumber int  `json:"page"`
	TotalCount int  `json:"totalCount"`
	HasMore    bool `json:"hasMore"`
}

// Realtime event names pushed over the socket channel.
const (
	EventReceiveMessage      = "receive_message"
	EventReceiveNotification = "receive_notification"
	EventTyping              = "typing"
	EventMessageRead         = "message_read"
	EventUserOnline          = "user_online"
	EventJoin                = "join"
)

// TypingEvent is the payload of the "typing" realtime event.
type TypingEvent struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
	Typing         bool   `json:"typing"`
}

// MessageReadEvent is the payload of the "message_read" realtime event.
type MessageReadEvent struct {
	ConversationID string `json:"conversationId"`
	ReaderID       string `json:"readerId"`
}
