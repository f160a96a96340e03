// Package resend delivers contact email through the Resend HTTP API.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/nirbhaysingh/portfolio/internal/contact"
	"github.com/nirbhaysingh/portfolio/internal/platform/timeouts"
)

// DefaultBaseURL is the public Resend API endpoint.
const DefaultBaseURL = "https://api.resend.com"

const maxErrorBody = 64 << 10

// Client sends email with one API key.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	newKey     func() string
}

var _ contact.Provider = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, such as a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient builds a client. An empty apiKey is accepted; SendEmail then
// fails with contact.ErrNotConfigured.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: timeouts.EmailSend},
		newKey:     uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type apiError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// SendEmail posts one email to the API.
func (c *Client) SendEmail(ctx context.Context, email contact.Email) (contact.Receipt, error) {
	if c == nil || c.apiKey == "" {
		return contact.Receipt{}, fmt.Errorf("resend api key is missing: %w", contact.ErrNotConfigured)
	}

	payload, err := json.Marshal(sendRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	})
	if err != nil {
		return contact.Receipt{}, fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return contact.Receipt{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", c.newKey())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return contact.Receipt{}, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return contact.Receipt{}, rejection(resp)
	}

	var receipt contact.Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return contact.Receipt{}, &contact.DeliveryError{Kind: contact.DeliveryUnreachable, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return receipt, nil
}

func rejection(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = resp.StatusCode
	}
	return &contact.DeliveryError{
		Kind:       contact.DeliveryRejected,
		StatusCode: apiErr.StatusCode,
		Name:       apiErr.Name,
		Message:    apiErr.Message,
	}
}

func transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &contact.DeliveryError{Kind: contact.DeliveryTimeout, Err: err}
	}
	return &contact.DeliveryError{Kind: contact.DeliveryUnreachable, Err: err}
}
