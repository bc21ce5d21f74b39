package hubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cozify-client/internal/domain/model"
)

const (
	// DefaultCloudBaseURL is the cloud relay base used for remote routing.
	DefaultCloudBaseURL = "https://cloud2.cozify.fi/ui/0.2/"

	// apiPath is the hub API version prefix shared by local and relayed
	// requests.
	apiPath = "/cc/1.11"

	// localPort is the hub's plain-HTTP LAN port.
	localPort = 8893
)

// Client talks to a hub, either directly over the LAN or through the cloud
// relay depending on the route's Remote flag. It implements ports.HubAPI.
type Client struct {
	cloudBase  string
	localBase  string // overrides http://host:8893, for tests
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithCloudBaseURL sets a custom relay base URL.
func WithCloudBaseURL(base string) Option {
	return func(c *Client) {
		c.cloudBase = strings.TrimSuffix(base, "/") + "/"
	}
}

// WithLocalBaseURL replaces the http://host:8893 scheme for local requests,
// mainly for tests.
func WithLocalBaseURL(base string) Option {
	return func(c *Client) {
		c.localBase = strings.TrimSuffix(base, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a hub client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		cloudBase:  DefaultCloudBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wire shape of one devices-snapshot entry.
type rawDevice struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Capabilities struct {
		Type   string   `json:"type"`
		Values []string `json:"values"`
	} `json:"capabilities"`
	State map[string]any `json:"state"`
}

// HubInfo queries the hub's unauthenticated identity endpoint. Always local,
// used during discovery before any token exists.
func (c *Client) HubInfo(ctx context.Context, host string) (*model.HubInfo, error) {
	body, err := c.get(ctx, c.hostBase(host)+"/hub", nil)
	if err != nil {
		return nil, err
	}
	var info model.HubInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// TZ fetches the hub timezone as plain text, e.g. "Europe/Helsinki".
func (c *Client) TZ(ctx context.Context, route model.Route) (string, error) {
	body, err := c.get(ctx, c.endpoint(route, "/hub/tz"), c.headers(route))
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(string(body)), `"`), nil
}

// Devices fetches the full live device snapshot.
func (c *Client) Devices(ctx context.Context, route model.Route) (model.DeviceMap, error) {
	body, err := c.get(ctx, c.endpoint(route, "/devices"), c.headers(route))
	if err != nil {
		return nil, err
	}
	var raw map[string]rawDevice
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	devs := make(model.DeviceMap, len(raw))
	for id, rd := range raw {
		devs[id] = &model.Device{
			ID:           id,
			Name:         rd.Name,
			Capabilities: model.ParseCapabilitySet(rd.Capabilities.Values),
			State:        model.DeviceState(rd.State),
		}
	}
	return devs, nil
}

// CommandState pushes a partial state patch to one device.
func (c *Client) CommandState(ctx context.Context, route model.Route, deviceID string, state model.DeviceState) error {
	cmd := []map[string]any{{
		"id":    deviceID,
		"type":  "CMD_DEVICE",
		"state": map[string]any(state),
	}}
	return c.command(ctx, route, cmd)
}

// CommandOn turns one device on.
func (c *Client) CommandOn(ctx context.Context, route model.Route, deviceID string) error {
	return c.command(ctx, route, []map[string]any{{"id": deviceID, "type": "CMD_DEVICE_ON"}})
}

// CommandOff turns one device off.
func (c *Client) CommandOff(ctx context.Context, route model.Route, deviceID string) error {
	return c.command(ctx, route, []map[string]any{{"id": deviceID, "type": "CMD_DEVICE_OFF"}})
}

func (c *Client) command(ctx context.Context, route model.Route, cmd []map[string]any) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.endpoint(route, "/devices/command"), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	for k, v := range c.headers(route) {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = c.roundTrip(req)
	return err
}

// endpoint builds the request URL: plain HTTP against the hub's LAN address,
// or the relay path with the same API suffix when the route is remote.
func (c *Client) endpoint(route model.Route, path string) string {
	if route.Remote {
		return c.cloudBase + "hub/remote" + apiPath + path
	}
	return c.hostBase(route.Host) + apiPath + path
}

func (c *Client) hostBase(host string) string {
	if c.localBase != "" {
		return c.localBase
	}
	return fmt.Sprintf("http://%s:%d", host, localPort)
}

// headers carries auth: the hub token directly for local requests; for
// relayed requests the cloud token authorizes against the relay and the hub
// token rides along for the hub itself.
func (c *Client) headers(route model.Route) map[string]string {
	if route.Remote {
		return map[string]string{
			"Authorization": route.CloudToken,
			"X-Hub-Key":     route.HubToken,
		}
	}
	return map[string]string{"Authorization": route.HubToken}
}

func (c *Client) get(ctx context.Context, endpoint string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.roundTrip(req)
}

func (c *Client) roundTrip(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Zero status code marks the connection-failure class so callers can
		// group it with 503/504.
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
