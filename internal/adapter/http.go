package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mediamz/accounts/internal/logger"
	"github.com/mediamz/accounts/internal/utils"
	"github.com/mediamz/accounts/models"
)

type HTTPClientConfig struct {
	BaseURL string

	// SkipAuthToken, when non-empty, is sent with every authenticated
	// request in the skip-auth-token header instead of a bearer token.
	// Intended for local development against a server with the matching
	// bypass value configured.
	SkipAuthToken string

	Timeout time.Duration
}

type httpServerAdapter struct {
	client        *resty.Client
	skipAuthToken string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL and configures
// the underlying resty client with the resolved base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(cfg HTTPClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{
		client:        cli,
		skipAuthToken: cfg.SkipAuthToken,
		logger:        logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Health implements [ServerAdapter].
func (h *httpServerAdapter) Health(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}

	return mapHTTPError(resp)
}

// Version implements [ServerAdapter].
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	var loginResp models.LoginResponse
	if err = decodeEnvelope(resp, &loginResp); err != nil {
		return models.LoginResponse{}, fmt.Errorf("decode login response: %w", err)
	}

	h.SetToken(token)
	return loginResp, nil
}

// ListUsers implements [ServerAdapter].
func (h *httpServerAdapter) ListUsers(ctx context.Context, page, pageSize int) (models.UserPage, error) {
	req := h.authedRequest(ctx)
	if page > 0 {
		req.SetQueryParam("page", strconv.Itoa(page))
		req.SetQueryParam("page_size", strconv.Itoa(pageSize))
	}

	resp, err := req.Get("/api/users")
	if err != nil {
		return models.UserPage{}, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserPage{}, err
	}

	var userPage models.UserPage
	if err = decodeEnvelope(resp, &userPage); err != nil {
		return models.UserPage{}, fmt.Errorf("decode list users response: %w", err)
	}

	return userPage, nil
}

// CreateUser implements [ServerAdapter].
func (h *httpServerAdapter) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/users")
	if err != nil {
		return models.User{}, fmt.Errorf("create user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var createdUser models.User
	if err = decodeEnvelope(resp, &createdUser); err != nil {
		return models.User{}, fmt.Errorf("decode create user response: %w", err)
	}

	return createdUser, nil
}

// UpdateUser implements [ServerAdapter].
func (h *httpServerAdapter) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(patch).
		Post(fmt.Sprintf("/api/users/%d", id))
	if err != nil {
		return models.User{}, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var updatedUser models.User
	if err = decodeEnvelope(resp, &updatedUser); err != nil {
		return models.User{}, fmt.Errorf("decode update user response: %w", err)
	}

	return updatedUser, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.skipAuthToken != "" {
		req.SetHeader("skip-auth-token", h.skipAuthToken)
		return req
	}
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// decodeEnvelope unwraps the server's response envelope and unmarshals the
// resp payload into out.
func decodeEnvelope(resp *resty.Response, out any) error {
	var envelope struct {
		Code int             `json:"code"`
		Msg  string          `json:"msg"`
		Resp json.RawMessage `json:"resp"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return err
	}
	if envelope.Code != models.CodeSuccess {
		return fmt.Errorf("server error: %s", envelope.Msg)
	}
	if len(envelope.Resp) == 0 {
		return nil
	}

	return json.Unmarshal(envelope.Resp, out)
}
