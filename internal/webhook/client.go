// Package webhook posts integration events to an organization's configured URL.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
)

type Payload struct {
	Event     string         `json:"event"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// TestPayload is the body sent by the "test webhook" action.
func TestPayload(organizationID uint, now time.Time) Payload {
	return Payload{
		Event:     "test",
		Timestamp: now.UTC(),
		Data: map[string]any{
			"message":         "Teste de integração do Barber Backoffice",
			"organization_id": organizationID,
			"test":            true,
		},
	}
}

var errInternalDestination = errors.New("webhook destination is not a public address")

// 100.64.0.0/10, carrier-grade NAT.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

type Client struct {
	http         *http.Client
	allowPrivate bool
}

// NewClient refuses loopback, private, link-local and unspecified
// destinations unless allowPrivate is set. The check runs again at dial time,
// after DNS resolution, so a public name pointing inward is refused too.
func NewClient(timeout time.Duration, allowPrivate bool) *Client {
	dialer := &net.Dialer{Timeout: timeout}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !allowPrivate {
		dialer.Control = refuseInternalDial
		transport.Proxy = nil
	}
	transport.DialContext = dialer.DialContext

	return &Client{
		http:         &http.Client{Timeout: timeout, Transport: transport},
		allowPrivate: allowPrivate,
	}
}

func isInternal(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsInterfaceLocalMulticast() ||
		addr.IsMulticast() ||
		addr.IsUnspecified() ||
		sharedAddressSpace.Contains(addr)
}

func refuseInternalDial(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	addr, err := netip.ParseAddr(host)
	if err != nil || isInternal(addr) {
		return errInternalDestination
	}
	return nil
}

// Validate applies ValidateURL and, for guarded clients, rejects hosts that
// name an internal address literally.
func (c *Client) Validate(raw string) error {
	if err := ValidateURL(raw); err != nil {
		return err
	}
	if c.allowPrivate {
		return nil
	}

	u, _ := url.Parse(raw)
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return httperr.ErrBusiness("invalid_webhook_url")
	}
	if addr, err := netip.ParseAddr(host); err == nil && isInternal(addr) {
		return httperr.ErrBusiness("invalid_webhook_url")
	}
	return nil
}

// ValidateURL accepts absolute http(s) URLs only.
func ValidateURL(raw string) error {
	if raw == "" {
		return httperr.ErrBusiness("webhook_url_missing")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return httperr.ErrBusiness("invalid_webhook_url")
	}
	return nil
}

// Send delivers p and returns the response status. Any non-network outcome
// counts as delivered; the receiver's status is reported, not judged.
func (c *Client) Send(ctx context.Context, target, apiKey string, p Payload) (int, error) {
	if err := c.Validate(target); err != nil {
		return 0, err
	}

	body, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_webhook_url")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "barber-backoffice-webhook/1.0")
	if apiKey != "" {
		req.Header.Set("X-Api-Key", apiKey)
	}

	resp, err := c.http.Do(req)
	if errors.Is(err, errInternalDestination) {
		return 0, httperr.ErrBusiness("invalid_webhook_url")
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", httperr.ErrBusiness("webhook_failed"), err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
