package cloudapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"cozify-client/internal/domain/model"
)

func TestEmailLogin_ReturnsTokenText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/user/emaillogin", r.URL.Path)
		assert.Equal(t, "user@example.com", r.URL.Query().Get("email"))
		assert.Equal(t, "123456", r.URL.Query().Get("password"))
		w.Write([]byte("opaque-remote-token\n"))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	token, err := c.EmailLogin(context.Background(), "user@example.com", "123456")
	assert.NoError(t, err)
	assert.Equal(t, "opaque-remote-token", token)
}

func TestRequestLogin_NonOKIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown account", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	err := c.RequestLogin(context.Background(), "typo@example.com")
	var apiErr *model.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "unknown account")
}

func TestHubKeys_AuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/hubkeys", r.URL.Path)
		assert.Equal(t, "remote-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"hub-1":"hub-token"}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	keys, err := c.HubKeys(context.Background(), "remote-token")
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"hub-1": "hub-token"}, keys)
}

func TestHubKeys_401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.HubKeys(context.Background(), "stale")
	assert.True(t, model.IsStatus(err, http.StatusUnauthorized))
}

func TestLANIPs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hub/lan_ip", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization")) // origin-ip based, no token
		w.Write([]byte(`["192.0.2.10","192.0.2.11"]`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	ips, err := c.LANIPs(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"192.0.2.10", "192.0.2.11"}, ips)
}

func TestRefreshSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/refreshsession", r.URL.Path)
		assert.Equal(t, "old-token", r.Header.Get("Authorization"))
		w.Write([]byte("new-token"))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	token, err := c.RefreshSession(context.Background(), "old-token")
	assert.NoError(t, err)
	assert.Equal(t, "new-token", token)
}

func TestConnectionFailureHasZeroStatus(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:1")) // nothing listens here
	_, err := c.LANIPs(context.Background())
	assert.True(t, model.IsStatus(err, 0))
}
