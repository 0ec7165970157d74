// Package api implements the HTTP client core shared by every service
// wrapper: bearer-token injection, single-flight token refresh with
// replay on 401, and bounded retry with exponential backoff on
// transport and server errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"

	"github.com/hoyapp/hoygo/internal/config"
	"github.com/hoyapp/hoygo/internal/logger"
	"github.com/hoyapp/hoygo/internal/models"
	"github.com/hoyapp/hoygo/internal/session"
)

type ctxKey int

const (
	publicKey ctxKey = iota
	noRetryKey
)

// Public marks ctx so the request is sent without credentials and is
// never subject to 401 refresh. Login, register and password reset
// calls use it.
func Public(ctx context.Context) context.Context {
	return context.WithValue(ctx, publicKey, true)
}

func isPublic(req *resty.Request) bool {
	v, _ := req.Context().Value(publicKey).(bool)
	return v
}

func noRetry(ctx context.Context) context.Context {
	return context.WithValue(ctx, noRetryKey, true)
}

func isNoRetry(req *resty.Request) bool {
	v, _ := req.Context().Value(noRetryKey).(bool)
	return v
}

// Client wraps resty with the Hoy auth and retry policy. One Client is
// shared by all service wrappers; it is safe for concurrent use.
type Client struct {
	rest    *resty.Client
	plain   *resty.Client
	session *session.Session
	refresh singleflight.Group
	leeway  time.Duration
}

// New builds the shared client from cfg. The plain sibling client
// carries no hooks and is used for the refresh call itself, so a 401
// on refresh can never recurse into another refresh.
func New(cfg *config.Config, sess *session.Session) *Client {
	c := &Client{
		session: sess,
		leeway:  cfg.RefreshLeeway,
	}

	c.plain = resty.New().
		SetBaseURL(cfg.APIBaseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	c.rest = resty.New().
		SetBaseURL(cfg.APIBaseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWaitMin).
		SetRetryMaxWaitTime(cfg.RetryWaitMax)

	c.rest.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if isPublic(req) {
			return nil
		}
		if c.session.Expired() {
			return ErrSessionExpired
		}

		if deviceID, err := c.session.DeviceID(); err == nil {
			req.SetHeader("X-Device-ID", deviceID)
		}

		token := c.session.AccessToken()
		if token == "" {
			return nil
		}

		if c.session.RefreshToken() != "" && c.session.ExpiresSoon(c.leeway) {
			fresh, err := c.refreshNow(req.Context())
			switch {
			case err == nil:
				token = fresh
			case errors.Is(err, ErrSessionExpired):
				return ErrSessionExpired
			default:
				// Transient refresh failure: send the old token and
				// let the 401 path sort it out.
				logger.Log.Debugw("proactive token refresh failed", "error", err)
			}
		}

		req.SetHeader("Authorization", "Bearer "+token)

		return nil
	})

	c.rest.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Log.Debugw("request",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
			"attempt", resp.Request.Attempt,
		)
		return nil
	})

	c.rest.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if resp == nil || resp.Request == nil {
			return false
		}
		if isNoRetry(resp.Request) {
			return false
		}
		if err != nil {
			return true
		}

		switch resp.StatusCode() {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true

		case http.StatusUnauthorized:
			if isPublic(resp.Request) {
				return false
			}
			if c.session.RefreshToken() == "" {
				return false
			}

			// A concurrent request may have rotated the pair already;
			// in that case just replay with the fresh token.
			sent := strings.TrimPrefix(resp.Request.Header.Get("Authorization"), "Bearer ")
			if current := c.session.AccessToken(); current != "" && current != sent {
				return true
			}

			_, refreshErr := c.refreshNow(resp.Request.Context())
			return refreshErr == nil
		}

		return false
	})

	return c
}

// refreshNow exchanges the refresh token for a new pair. Concurrent
// callers collapse into a single network call; every waiter observes
// the same outcome.
func (c *Client) refreshNow(ctx context.Context) (string, error) {
	v, err, _ := c.refresh.Do("refresh", func() (interface{}, error) {
		refreshToken := c.session.RefreshToken()
		if refreshToken == "" {
			return nil, ErrSessionExpired
		}

		var pair models.TokenPair
		resp, err := c.plain.R().
			SetContext(ctx).
			SetBody(models.RefreshRequest{RefreshToken: refreshToken}).
			SetResult(&pair).
			Post("/auth/refresh")
		if err != nil {
			return nil, fmt.Errorf("refresh request: %w", err)
		}

		if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
			c.session.MarkExpired()
			if clearErr := c.session.Clear(); clearErr != nil {
				logger.Log.Errorw("clearing expired session", "error", clearErr)
			}
			return nil, ErrSessionExpired
		}

		if !resp.IsSuccess() {
			return nil, errorFromResponse(resp)
		}

		if err := c.session.SaveTokens(pair); err != nil {
			return nil, err
		}

		logger.Log.Debugw("access token refreshed")

		return pair.AccessToken, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

// ForceRefresh refreshes the token pair immediately, regardless of the
// access token's remaining lifetime.
func (c *Client) ForceRefresh(ctx context.Context) error {
	_, err := c.refreshNow(ctx)
	return err
}

// Get performs a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, resty.MethodGet, path, nil, out, nil)
}

// GetQuery performs a GET request with query parameters.
func (c *Client) GetQuery(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, resty.MethodGet, path, nil, out, query)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, resty.MethodPost, path, in, out, nil)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, resty.MethodPut, path, in, out, nil)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, resty.MethodDelete, path, nil, nil, nil)
}

// Upload sends data as a multipart file field. Multipart bodies cannot
// be replayed from a consumed reader, so uploads are excluded from the
// retry policy.
func (c *Client) Upload(ctx context.Context, path, field, fileName, contentType string, data []byte, out any) error {
	req := c.rest.R().
		SetContext(noRetry(ctx)).
		SetMultipartField(field, fileName, contentType, bytes.NewReader(data))
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Post(path)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return ErrSessionExpired
		}
		return fmt.Errorf("POST %s: %w", path, err)
	}
	if !resp.IsSuccess() {
		if resp.StatusCode() == http.StatusUnauthorized && c.session.Expired() {
			return ErrSessionExpired
		}
		return errorFromResponse(resp)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, query url.Values) error {
	req := c.rest.R().SetContext(ctx)
	if in != nil {
		req.SetBody(in)
	}
	if out != nil {
		req.SetResult(out)
	}
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return ErrSessionExpired
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if !resp.IsSuccess() {
		// A 401 that survives the retry hook means the refresh token
		// was rejected along the way.
		if resp.StatusCode() == http.StatusUnauthorized && c.session.Expired() {
			return ErrSessionExpired
		}
		return errorFromResponse(resp)
	}

	return nil
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     string `json:"error"`
}

func errorFromResponse(resp *resty.Response) error {
	apiErr := &APIError{Status: resp.StatusCode()}

	var payload errorPayload
	if err := json.Unmarshal(resp.Body(), &payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Err
		}
	}

	return apiErr
}
