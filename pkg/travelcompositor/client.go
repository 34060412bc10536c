// Package travelcompositor is a thin client for the Travel Compositor REST
// API. It authenticates with username/password/microsite credentials, sends
// the resulting token in the auth-token header, and returns raw JSON
// documents without interpreting them. No retries, backoff or circuit
// breaking: every call is attempted once, except a single re-authentication
// replay on 401.
package travelcompositor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rondreis/travel-office-backend/logger"
	"github.com/rondreis/travel-office-backend/types"
	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// ErrNotFound is returned when every candidate endpoint for a document
// answered 404.
var ErrNotFound = errors.New("travelcompositor: document not found")

// Config holds the upstream connection settings.
type Config struct {
	BaseURL   string
	Username  string
	Password  string
	Microsite string
	Timeout   time.Duration
}

// Client talks to one Travel Compositor microsite. It is safe for concurrent
// use; the token is guarded by a mutex and refreshed lazily.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *zap.SugaredLogger

	mu    sync.Mutex
	token string
}

// ClientInterface is the consumer-facing surface, for mocking in services.
type ClientInterface interface {
	GetBooking(ctx context.Context, id string) (types.RawDocument, error)
	GetTravelIdea(ctx context.Context, id string) (types.RawDocument, error)
}

// Pinger reports upstream reachability, for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

func NewClient(cfg Config, log *zap.SugaredLogger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

type authRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	MicrositeID string `json:"micrositeId"`
}

type authResponse struct {
	Token string `json:"token"`
}

// Authenticate obtains a fresh auth token. Called lazily by the request
// helpers; exposed for connectivity checks.
func (c *Client) Authenticate(ctx context.Context) error {
	c.log.Debugw("Authenticating against Travel Compositor", "microsite", c.cfg.Microsite)

	body, err := json.Marshal(authRequest{
		Username:    c.cfg.Username,
		Password:    c.cfg.Password,
		MicrositeID: c.cfg.Microsite,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/resources/authentication/authenticate", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warnw("Authentication returned non-OK status", "statusCode", resp.StatusCode)
		return fmt.Errorf("authentication returned status %d", resp.StatusCode)
	}

	var auth authResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}
	if auth.Token == "" {
		return fmt.Errorf("authentication response carried no token")
	}

	c.mu.Lock()
	c.token = auth.Token
	c.mu.Unlock()
	c.log.Debugw("Authentication succeeded", "token", logger.MaskAuthToken(auth.Token))
	return nil
}

// Ping verifies the upstream is reachable by obtaining a fresh token.
func (c *Client) Ping(ctx context.Context) error {
	return c.Authenticate(ctx)
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// GetBooking fetches one booking document. Candidate endpoints are probed
// one at a time in a fixed order, stopping at the first success; an id that
// matches no endpoint yields ErrNotFound.
func (c *Client) GetBooking(ctx context.Context, id string) (types.RawDocument, error) {
	endpoints := []string{
		fmt.Sprintf("/resources/booking/%s/%s", c.cfg.Microsite, id),
		fmt.Sprintf("/resources/travelidea/%s/%s", c.cfg.Microsite, id),
		fmt.Sprintf("/resources/travelidea/%s/info/%s", c.cfg.Microsite, id),
	}

	for _, endpoint := range endpoints {
		doc, err := c.getDocument(ctx, endpoint)
		if err == nil {
			return doc, nil
		}
		if errors.Is(err, ErrNotFound) {
			c.log.Debugw("Endpoint probe missed, trying next", "endpoint", endpoint)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
}

// GetTravelIdea fetches one travel-idea document directly, without the
// booking probe chain.
func (c *Client) GetTravelIdea(ctx context.Context, id string) (types.RawDocument, error) {
	doc, err := c.getDocument(ctx, fmt.Sprintf("/resources/travelidea/%s/%s", c.cfg.Microsite, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("travel idea %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return doc, nil
}

// getDocument performs one authenticated GET. A 401 triggers exactly one
// re-authentication and replay.
func (c *Client) getDocument(ctx context.Context, endpoint string) (types.RawDocument, error) {
	if c.currentToken() == "" {
		if err := c.Authenticate(ctx); err != nil {
			return nil, err
		}
	}

	doc, status, err := c.doGet(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		c.log.Debugw("Token rejected, re-authenticating once", "endpoint", endpoint)
		if err := c.Authenticate(ctx); err != nil {
			return nil, err
		}
		doc, status, err = c.doGet(ctx, endpoint)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case status == http.StatusOK:
		return doc, nil
	case status == http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("travel compositor returned status %d for %s", status, endpoint)
	}
}

func (c *Client) doGet(ctx context.Context, endpoint string) (types.RawDocument, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("auth-token", c.currentToken())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	var doc types.RawDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return doc, resp.StatusCode, nil
}
