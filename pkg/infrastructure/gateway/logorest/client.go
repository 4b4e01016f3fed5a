// Package logorest posts demand fiches to the Logo REST API.
package logorest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/vsinha/ropfeed/pkg/application/dto"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
	"go.uber.org/zap"
)

// ErrGatewayRejected is returned when the ERP answers with a non-2xx status
var ErrGatewayRejected = errors.New("logo rejected the request")

const (
	tokenPath       = "/api/v1/token"
	demandSlipsPath = "/api/v1/demandSlips"

	// tokenSafetyMargin is taken off the advertised token lifetime
	tokenSafetyMargin = 60 * time.Second
	bodyExcerptLimit  = 512
)

// Options configures a Client
type Options struct {
	BaseURL      string
	Username     string
	Password     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client implements repositories.DemandGateway over HTTP
type Client struct {
	opts       Options
	httpClient *http.Client
	cache      TokenCache
	logger     *zap.Logger

	// tokenMu serialises token refreshes within the process
	tokenMu sync.Mutex
}

// NewClient creates a client. A nil cache keeps the token in process.
func NewClient(opts Options, cache TokenCache, logger *zap.Logger) *Client {
	if cache == nil {
		cache = NewMemoryTokenCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Client{
		opts:       opts,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		logger:     logger,
	}
}

// Verify interface compliance
var _ repositories.DemandGateway = (*Client)(nil)

// Send posts the fiche for firm. A 401 drops the cached token and retries once.
func (c *Client) Send(ctx context.Context, firm entities.FirmNo, doc *entities.DemandDocument) error {
	body, err := json.Marshal(dto.NewLogoDemandFiche(doc))
	if err != nil {
		return fmt.Errorf("failed to encode demand fiche: %w", err)
	}

	status, respBody, err := c.post(ctx, firm, body)
	if err != nil {
		return err
	}
	// token refresh, not a retry policy: one re-post after a 401, other failures go back to the caller
	if status == http.StatusUnauthorized {
		c.logger.Info("logo token rejected, refreshing", zap.String("fiche_no", doc.FicheNo))
		if err := c.cache.Delete(ctx, c.cacheKey()); err != nil {
			c.logger.Warn("failed to drop cached token", zap.Error(err))
		}
		status, respBody, err = c.post(ctx, firm, body)
		if err != nil {
			return err
		}
	}

	if status < 200 || status >= 300 {
		return fmt.Errorf("%w: status %d: %s", ErrGatewayRejected, status, excerpt(respBody))
	}
	return nil
}

func (c *Client) post(ctx context.Context, firm entities.FirmNo, body []byte) (int, []byte, error) {
	token, err := c.token(ctx)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+demandSlipsPath, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("firmno", string(firm))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	return resp.StatusCode, respBody, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a cached token or fetches one with the password grant
func (c *Client) token(ctx context.Context) (string, error) {
	key := c.cacheKey()
	if cached, err := c.cache.Get(ctx, key); err == nil && cached != "" {
		return cached, nil
	} else if err != nil {
		c.logger.Warn("token cache read failed", zap.Error(err))
	}

	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	// double-check after acquiring the lock
	if cached, err := c.cache.Get(ctx, key); err == nil && cached != "" {
		return cached, nil
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.opts.Username)
	form.Set("password", c.opts.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.opts.ClientID, c.opts.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: token status %d: %s", ErrGatewayRejected, resp.StatusCode, excerpt(respBody))
	}

	var result tokenResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parse token response: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrGatewayRejected)
	}

	ttl := time.Duration(result.ExpiresIn)*time.Second - tokenSafetyMargin
	if ttl > 0 {
		if err := c.cache.Set(ctx, key, result.AccessToken, ttl); err != nil {
			c.logger.Warn("token cache write failed", zap.Error(err))
		}
	}
	return result.AccessToken, nil
}

func (c *Client) cacheKey() string {
	return "logo:token:" + c.opts.Username + "@" + c.opts.BaseURL
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > bodyExcerptLimit {
		return s[:bodyExcerptLimit] + "..."
	}
	return s
}
