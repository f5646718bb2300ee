// Package client talks to the game server's /start and /guess endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"guess-master/internal/models"
)

const (
	gameTokenHeader = "X-Game-Token"
	maxBodyBytes    = 1 << 20
	defaultTimeout  = 10 * time.Second
)

var (
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrMalformedResponse = errors.New("malformed response")
	// ErrTokenRejected means the server refused the game token. The token is
	// dropped, so the next Start asks for a new private game.
	ErrTokenRejected = errors.New("game token rejected")
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	private    bool

	mu    sync.Mutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPrivateGame asks the server for a game of our own instead of the shared one.
func WithPrivateGame() Option {
	return func(c *Client) { c.private = true }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start restarts the player's game. If the server rejects the stored token,
// Start retries once with a new private game.
func (c *Client) Start(ctx context.Context) (*models.GameResponse, error) {
	resp, err := c.start(ctx)
	if errors.Is(err, ErrTokenRejected) {
		resp, err = c.start(ctx)
	}
	return resp, err
}

func (c *Client) start(ctx context.Context) (*models.GameResponse, error) {
	url := c.baseURL + "/start"
	if c.private && c.currentToken() == "" {
		url += "?mode=private"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build start request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}
	return resp, nil
}

func (c *Client) Guess(ctx context.Context, guess int) (*models.GameResponse, error) {
	body, err := json.Marshal(models.GuessRequest{Guess: guess})
	if err != nil {
		return nil, fmt.Errorf("encode guess: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/guess", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build guess request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("submit guess: %w", err)
	}
	return resp, nil
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) do(req *http.Request) (*models.GameResponse, error) {
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && req.Header.Get("Authorization") != "" {
		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("%w: %d: %w", ErrUnexpectedStatus, resp.StatusCode, ErrTokenRejected)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var payload struct {
		Message *string  `json:"message"`
		Prize   *float64 `json:"prize"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.Message == nil || payload.Prize == nil {
		return nil, fmt.Errorf("%w: missing message or prize", ErrMalformedResponse)
	}

	if token := resp.Header.Get(gameTokenHeader); token != "" {
		c.mu.Lock()
		c.token = token
		c.mu.Unlock()
	}

	return &models.GameResponse{
		Message: *payload.Message,
		Prize:   *payload.Prize,
	}, nil
}
