// Package whatsapp sends template messages through the WhatsApp Cloud API.
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
)

const DefaultBaseURL = "https://graph.facebook.com/v22.0"

type Config struct {
	BaseURL        string
	PhoneNumberID  string
	Token          string
	Template       string
	Language       string
	HeaderImageURL string
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// APIError is the error object returned by the Graph API.
type APIError struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	code := "No code"
	if e.Code != 0 {
		code = fmt.Sprint(e.Code)
	}
	typ := e.Type
	if typ == "" {
		typ = "No type"
	}
	msg := e.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return fmt.Sprintf("[%s] %s - %s", code, typ, msg)
}

type templatePayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Template         template `json:"template"`
}

type template struct {
	Name       string      `json:"name"`
	Language   language    `json:"language"`
	Components []component `json:"components"`
}

type language struct {
	Code string `json:"code"`
}

type component struct {
	Type       string      `json:"type"`
	Parameters []parameter `json:"parameters"`
}

type parameter struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Image *image `json:"image,omitempty"`
}

type image struct {
	Link string `json:"link"`
}

func (c *Client) payload(to, name string) templatePayload {
	var components []component
	if c.cfg.HeaderImageURL != "" {
		components = append(components, component{
			Type:       "header",
			Parameters: []parameter{{Type: "image", Image: &image{Link: c.cfg.HeaderImageURL}}},
		})
	}
	components = append(components, component{
		Type:       "body",
		Parameters: []parameter{{Type: "text", Text: name}},
	})
	return templatePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template: template{
			Name:       c.cfg.Template,
			Language:   language{Code: c.cfg.Language},
			Components: components,
		},
	}
}

// SendTemplate issues one POST for the configured template. Non 2xx responses
// come back as *APIError.
func (c *Client) SendTemplate(ctx context.Context, to, name string) error {
	body, err := json.Marshal(c.payload(to, name))
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var envelope struct {
		Error APIError `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &envelope)
	envelope.Error.Status = resp.StatusCode
	return &envelope.Error
}
