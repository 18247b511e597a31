// Package conversation provides a Go SDK for polling a ticket conversation
// and the unread badge from the helpdesk API.
package conversation

import "time"

// Message is a single conversation entry as returned by the API.
type Message struct {
	ID         uint      `json:"id"`
	TicketID   uint      `json:"ticket_id"`
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Body       string    `json:"body"`
	BodyHTML   string    `json:"body_html,omitempty"`
	IsOperator bool      `json:"is_operator"`
	CreatedAt  time.Time `json:"created_at"`
}

// UnreadCount is the unread counter payload.
type UnreadCount struct {
	Unread int64 `json:"unread"`
}

// MarkReadResult is the acknowledgment for a mark-read call.
type MarkReadResult struct {
	OK bool `json:"ok"`
}

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
