// Package links talks to the external service-selection link issuer.
//
// The issuer is part of the booking site, not this service: it mints a
// tokenized URL where a customer can view packages, pick services, and pay
// a deposit. This package only requests links and renders them as QR codes
// for print collateral.
package links

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/m10dj/sms-agent/internal/httpkit"
	qrcode "github.com/skip2/go-qrcode"
)

// Request describes the customer the link should be personalized for.
// Field names are the issuing endpoint's wire contract.
type Request struct {
	Email         string `json:"email"`
	ContactID     string `json:"contactId,omitempty"`
	EventType     string `json:"eventType"`
	EventDate     string `json:"eventDate,omitempty"`
	ForceNewToken bool   `json:"forceNewToken"`
}

type response struct {
	Link string `json:"link"`
}

// Issuer mints personalized service-selection links. Implemented by
// Client; faked in tests.
type Issuer interface {
	Generate(ctx context.Context, req Request) (string, error)
	Shorten(link string) string
}

// Client calls the link-issuing endpoint over HTTP.
type Client struct {
	endpoint   string
	siteURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a link client. endpoint is the full URL of the
// issuing API; siteURL is the public site prefix stripped for short links.
func NewClient(endpoint, siteURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:   endpoint,
		siteURL:    siteURL,
		httpClient: httpkit.NewClient(),
		logger:     logger.With("component", "links"),
	}
}

// Generate requests a personalized link for the given customer.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("link endpoint not configured")
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody := httpkit.ReadErrorBody(resp.Body, 4096)
		c.logger.Error("link issuer error", "status", resp.StatusCode, "body", errBody)
		return "", fmt.Errorf("link issuer error %d: %s", resp.StatusCode, errBody)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if r.Link == "" {
		return "", fmt.Errorf("link issuer returned empty link")
	}

	c.logger.Debug("service link issued", "event_type", req.EventType)
	return r.Link, nil
}

// Shorten strips the public site prefix for SMS-friendly display.
func (c *Client) Shorten(link string) string {
	if c.siteURL == "" {
		return link
	}
	return strings.TrimPrefix(link, strings.TrimSuffix(c.siteURL, "/")+"/")
}

// QRPNG renders a link as a PNG QR code with the given edge size in pixels.
func QRPNG(link string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
