// Package whatsapp sends reply messages back through a Z-API style gateway.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/config"
)

// Client posts outbound text messages to the configured send-message URL.
// A client without a URL is disabled and drops sends silently; the reply is
// still stored on the message and shown on the dashboard.
type Client struct {
	cfg    config.WhatsAppConfig
	client *http.Client
	logger *zap.Logger
}

type sendTextRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// NewClient builds a reply sender.
func NewClient(cfg config.WhatsAppConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{cfg: cfg, client: httpClient, logger: logger}
}

// Enabled reports whether a gateway URL is configured.
func (c *Client) Enabled() bool {
	return c.cfg.SendURL != ""
}

// SendText delivers a reply to the given phone. URL and token overrides
// allow runtime settings to take precedence over static configuration.
func (c *Client) SendText(ctx context.Context, phone, text string, overrideURL string) error {
	url := c.cfg.SendURL
	if overrideURL != "" {
		url = overrideURL
	}
	if url == "" {
		c.logger.Debug("whatsapp send skipped; no gateway configured", zap.String("phone", phone))
		return nil
	}

	payload, err := json.Marshal(sendTextRequest{Phone: phone, Message: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Client-Token", c.cfg.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}
	return nil
}
