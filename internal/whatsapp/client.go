// Package whatsapp is the HTTP client for the Baileys bridge service that
// delivers outbound WhatsApp messages.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"legal_intake_backend/platform/config"
	"legal_intake_backend/platform/logger"
	"legal_intake_backend/platform/phone"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logger.Logger
}

type sendRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}

// NewClient returns nil when no bridge URL is configured; methods on a nil
// client fail with a configuration error so callers degrade instead of
// reporting phantom deliveries.
func NewClient(cfg config.WhatsAppConfig, log *logger.Logger) *Client {
	if cfg.GetWhatsAppURL() == "" {
		return nil
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.GetWhatsAppURL(), "/"),
		apiKey:  cfg.GetWhatsAppAPIKey(),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// Send delivers one text message. The recipient may be raw digits or an
// already formatted JID; digits are normalized and suffixed here.
func (c *Client) Send(ctx context.Context, phoneNumber, text string) error {
	if c == nil {
		return fmt.Errorf("whatsapp bridge not configured")
	}

	payload := sendRequest{
		PhoneNumber: JID(phoneNumber),
		Message:     text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal whatsapp payload: %w", err)
	}

	url := c.baseURL + "/send-message"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp bridge returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	c.log.Info("whatsapp message sent", "phone_number", payload.PhoneNumber)
	return nil
}

// Health probes the bridge's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("whatsapp bridge not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp health check failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("whatsapp bridge unhealthy: %d", resp.StatusCode)
	}
	return nil
}

// JID converts a phone number to the bridge's recipient format.
func JID(phoneNumber string) string {
	if strings.Contains(phoneNumber, "@") {
		return phoneNumber
	}
	return phone.NormalizeBR(phoneNumber) + "@s.whatsapp.net"
}
