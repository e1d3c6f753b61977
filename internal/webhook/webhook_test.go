package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
)

func TestSend_PostsTestPayload(t *testing.T) {
	var (
		got    map[string]any
		apiKey string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		apiKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	status, err := NewClient(time.Second, true).Send(context.Background(), srv.URL, "secret", TestPayload(7, now))
	require.NoError(t, err)

	// the receiver's status is reported but never treated as failure
	assert.Equal(t, http.StatusTeapot, status)
	assert.Equal(t, "secret", apiKey)
	assert.Equal(t, "test", got["event"])
	assert.Equal(t, "2025-03-15T12:00:00Z", got["timestamp"])

	data := got["data"].(map[string]any)
	assert.Equal(t, float64(7), data["organization_id"])
	assert.Equal(t, true, data["test"])
	assert.NotEmpty(t, data["message"])
}

func TestSend_NetworkErrorIsWebhookFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	target := srv.URL
	srv.Close()

	_, err := NewClient(time.Second, true).Send(context.Background(), target, "", TestPayload(1, time.Now()))
	assert.True(t, httperr.IsBusiness(err, "webhook_failed"))
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		in   string
		code string
	}{
		{"", "webhook_url_missing"},
		{"ftp://example.com/hook", "invalid_webhook_url"},
		{"not a url", "invalid_webhook_url"},
		{"https://example.com/hook", ""},
	}
	for _, tt := range tests {
		err := ValidateURL(tt.in)
		if tt.code == "" {
			assert.NoError(t, err, tt.in)
			continue
		}
		assert.True(t, httperr.IsBusiness(err, tt.code), tt.in)
	}
}

func TestClient_ValidateRefusesInternalHosts(t *testing.T) {
	guarded := NewClient(time.Second, false)

	for _, raw := range []string{
		"http://169.254.169.254/latest/meta-data/",
		"http://127.0.0.1:6379/",
		"http://localhost:5432",
		"http://LOCALHOST./admin",
		"http://api.localhost/hook",
		"http://[::1]/",
		"http://[::ffff:127.0.0.1]/",
		"http://10.0.0.5/hook",
		"http://192.168.1.1/",
		"http://172.16.0.10/",
		"http://100.64.0.1/",
		"http://0.0.0.0:8080/",
	} {
		assert.True(t, httperr.IsBusiness(guarded.Validate(raw), "invalid_webhook_url"), raw)
	}

	assert.NoError(t, guarded.Validate("https://example.com/hook"))
	assert.NoError(t, guarded.Validate("http://93.184.216.34/hook"))
	assert.True(t, httperr.IsBusiness(guarded.Validate(""), "webhook_url_missing"))

	assert.NoError(t, NewClient(time.Second, true).Validate("http://127.0.0.1:8080/hook"))
}

func TestRefuseInternalDial(t *testing.T) {
	assert.ErrorIs(t, refuseInternalDial("tcp4", "127.0.0.1:80", nil), errInternalDestination)
	assert.ErrorIs(t, refuseInternalDial("tcp4", "169.254.169.254:80", nil), errInternalDestination)
	assert.ErrorIs(t, refuseInternalDial("tcp6", "[fd00::1]:443", nil), errInternalDestination)
	assert.NoError(t, refuseInternalDial("tcp4", "93.184.216.34:443", nil))
}

func TestSend_GuardedClientNeverReachesInternalServer(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	guarded := NewClient(time.Second, false)

	_, err := guarded.Send(context.Background(), srv.URL, "secret", TestPayload(1, time.Now()))
	assert.True(t, httperr.IsBusiness(err, "invalid_webhook_url"))

	// the dial-time check holds even when the URL check is skipped
	resp, err := guarded.http.Get(srv.URL)
	if resp != nil {
		resp.Body.Close()
	}
	assert.True(t, errors.Is(err, errInternalDestination))

	assert.Zero(t, hits.Load())
}

func TestLimiter_PerOrganization(t *testing.T) {
	l := NewLimiter(2)

	assert.True(t, l.Allow(1))
	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))

	assert.True(t, l.Allow(2))
}
