package conversation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the conversation API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a new conversation API client.
//
// Parameters:
//   - baseURL: The API base URL (e.g., "https://helpdesk.example.com")
//   - token: The bearer access token of the authenticated user
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListConversation retrieves the full ordered conversation of a ticket.
func (c *Client) ListConversation(ctx context.Context, ticketID uint) ([]Message, error) {
	url := fmt.Sprintf("%s/tickets/%d/conversation", c.baseURL, ticketID)

	var messages []Message
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &messages); err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	return messages, nil
}

// PostMessage appends a message to a ticket's conversation.
func (c *Client) PostMessage(ctx context.Context, ticketID uint, body string) (*Message, error) {
	url := fmt.Sprintf("%s/tickets/%d/conversation", c.baseURL, ticketID)

	payload := map[string]string{"body": body}

	var message Message
	if err := c.doRequest(ctx, http.MethodPost, url, payload, &message); err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}
	return &message, nil
}

// MarkRead advances the caller's read watermark on a ticket to now.
func (c *Client) MarkRead(ctx context.Context, ticketID uint) (*MarkReadResult, error) {
	url := fmt.Sprintf("%s/tickets/%d/read", c.baseURL, ticketID)

	var result MarkReadResult
	if err := c.doRequest(ctx, http.MethodPost, url, nil, &result); err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	return &result, nil
}

// UnreadForTicket retrieves the caller's unread count on one ticket.
func (c *Client) UnreadForTicket(ctx context.Context, ticketID uint) (*UnreadCount, error) {
	url := fmt.Sprintf("%s/tickets/%d/unread", c.baseURL, ticketID)

	var count UnreadCount
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &count); err != nil {
		return nil, fmt.Errorf("unread for ticket: %w", err)
	}
	return &count, nil
}

// UnreadTotal retrieves the caller's unread count across owned tickets.
func (c *Client) UnreadTotal(ctx context.Context) (*UnreadCount, error) {
	url := fmt.Sprintf("%s/conversation/unread", c.baseURL)

	var count UnreadCount
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &count); err != nil {
		return nil, fmt.Errorf("unread total: %w", err)
	}
	return &count, nil
}

// doRequest performs an HTTP request and decodes the response envelope.
func (c *Client) doRequest(ctx context.Context, method, url string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiResp apiResponse
		if err := json.Unmarshal(respBody, &apiResp); err == nil && apiResp.Error != nil {
			return fmt.Errorf("api error: status=%d type=%s message=%s",
				resp.StatusCode, apiResp.Error.Type, apiResp.Error.Message)
		}
		return fmt.Errorf("api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	if result == nil {
		return nil
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if !apiResp.Success {
		return fmt.Errorf("api error: %s", apiResp.Message)
	}

	if apiResp.Data == nil {
		return nil
	}

	// Re-marshal and unmarshal to convert Data to the target type
	dataBytes, err := json.Marshal(apiResp.Data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	if err := json.Unmarshal(dataBytes, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}
