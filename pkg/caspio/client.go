/**
 * @description
 * This package provides a client for the Caspio REST API, the hosted tabular
 * datastore that holds the customer and package tables. It encapsulates the
 * OAuth2 client-credentials token exchange, a process-wide token cache, and
 * filtered read queries against named tables.
 *
 * Key features:
 * - Lazily refreshed bearer token with a safety margin before expiry.
 * - Generic table query returning loosely-typed records.
 * - Parameterized filter construction (see filter.go) so callers never
 *   interpolate raw input into a where clause.
 *
 * @dependencies
 * - context, encoding/json, fmt, net/http, net/url, strings, sync, time: Standard Go libraries.
 */
package caspio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Sentinel errors for the two external failure modes. Callers test with
// errors.Is; the wrapped message carries status and body detail.
var (
	ErrAuth  = errors.New("caspio: credential exchange failed")
	ErrQuery = errors.New("caspio: table query failed")
)

// tokenSafetyMargin is subtracted from the provider TTL so a token is never
// used within a minute of its stated expiry.
const tokenSafetyMargin = 60 * time.Second

// defaultPageSize is applied when a caller passes a non-positive page size.
const defaultPageSize = 100

// Client is a client for the Caspio REST API. The token cache is process-wide:
// construct one Client at startup and inject it wherever queries are issued.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *slog.Logger

	// mu guards token/expiry for memory safety only. Two goroutines racing
	// past an expired token may both refresh; the exchange is idempotent and
	// cheap, so no stronger exclusion is taken.
	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewClient creates a new Caspio API client for the given account.
// accountID is the Caspio account subdomain, e.g. "c1abc123".
func NewClient(accountID, clientID, clientSecret string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:      fmt.Sprintf("https://%s.caspio.com", accountID),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// tokenResponse is the provider's token-endpoint payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// queryResponse is the provider's record-query payload.
type queryResponse struct {
	Result []Record `json:"Result"`
}

// getToken returns the cached bearer token, refreshing it via the
// client-credentials exchange when the cached one is absent or expired.
func (c *Client) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Now().Before(c.expiry) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrAuth, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("caspio token exchange returned non-success status", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("%w: unmarshal token response: %v", ErrAuth, err)
	}

	expiry := time.Now().Add(time.Duration(tr.ExpiresIn)*time.Second - tokenSafetyMargin)

	c.mu.Lock()
	c.token = tr.AccessToken
	c.expiry = expiry
	c.mu.Unlock()

	return tr.AccessToken, nil
}

// Query reads records from the named table. where may be nil for an
// unfiltered read; pageSize <= 0 falls back to the provider default of 100.
// An absent result set decodes as an empty slice, never as an error.
func (c *Client) Query(ctx context.Context, table string, where *Filter, pageSize int) ([]Record, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}

	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	params := url.Values{}
	if where != nil {
		params.Set("q.where", where.String())
	}
	params.Set("q.pageSize", strconv.Itoa(pageSize))

	endpoint := fmt.Sprintf("%s/rest/v2/tables/%s/records?%s", c.baseURL, url.PathEscape(table), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrQuery, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("caspio query returned non-success status", "table", table, "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: table %s: status %d", ErrQuery, table, resp.StatusCode)
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, fmt.Errorf("%w: unmarshal query response: %v", ErrQuery, err)
	}

	if qr.Result == nil {
		return []Record{}, nil
	}
	return qr.Result, nil
}
