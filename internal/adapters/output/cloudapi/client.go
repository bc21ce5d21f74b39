package cloudapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"cozify-client/internal/domain/model"
)

// DefaultBaseURL is the vendor cloud relay base path.
const DefaultBaseURL = "https://cloud2.cozify.fi/ui/0.2/"

// Client talks to the cloud relay endpoints. It implements ports.CloudAPI.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL, mainly for tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(base, "/") + "/"
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a cloud relay client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestLogin implements user/requestlogin: asks the cloud to mail a
// one-time passcode to the account address.
func (c *Client) RequestLogin(ctx context.Context, email string) error {
	params := url.Values{"email": {email}}
	_, err := c.do(ctx, http.MethodPost, "user/requestlogin", params, "")
	return err
}

// EmailLogin implements user/emaillogin: exchanges email and passcode for an
// opaque remote token, returned as plain text.
func (c *Client) EmailLogin(ctx context.Context, email, otp string) (string, error) {
	params := url.Values{"email": {email}, "password": {otp}}
	body, err := c.do(ctx, http.MethodPost, "user/emaillogin", params, "")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// LANIPs implements hub/lan_ip. The cloud matches the request's origin ip
// against registered hub networks, so no token is needed or useful here.
func (c *Client) LANIPs(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, "hub/lan_ip", nil, "")
	if err != nil {
		return nil, err
	}
	var ips []string
	if err := json.Unmarshal(body, &ips); err != nil {
		return nil, err
	}
	return ips, nil
}

// HubKeys implements user/hubkeys: the map of hub id to hub token authorized
// for the account.
func (c *Client) HubKeys(ctx context.Context, remoteToken string) (map[string]string, error) {
	body, err := c.do(ctx, http.MethodGet, "user/hubkeys", nil, remoteToken)
	if err != nil {
		return nil, err
	}
	keys := make(map[string]string)
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// RefreshSession implements user/refreshsession: returns a renewed remote
// token as plain text. The caller persists it.
func (c *Client) RefreshSession(ctx context.Context, remoteToken string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "user/refreshsession", nil, remoteToken)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, authorization string) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &model.APIError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.APIError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &model.APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
