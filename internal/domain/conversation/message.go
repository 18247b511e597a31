// Package conversation holds the append-only message log attached to a
// ticket, the per-user read watermark, and the access predicate guarding
// both. Messages are immutable once written; there is no edit or delete.
package conversation

import (
	"fmt"
	"strings"
	"time"
)

// MaxBodyLength bounds a single message body.
const MaxBodyLength = 5000

type Message struct {
	id         uint
	ticketID   uint
	senderID   uint
	body       string
	isOperator bool
	createdAt  time.Time
}

// NewMessage builds an unsaved message. The body is trimmed; a body that
// trims to empty is rejected. ID and created_at are assigned by the store.
func NewMessage(ticketID, senderID uint, body string, isOperator bool) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if senderID == 0 {
		return nil, fmt.Errorf("sender ID is required")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("message body cannot be empty")
	}
	if len(body) > MaxBodyLength {
		return nil, fmt.Errorf("message body exceeds maximum length of %d characters", MaxBodyLength)
	}

	return &Message{
		ticketID:   ticketID,
		senderID:   senderID,
		body:       body,
		isOperator: isOperator,
	}, nil
}

func ReconstructMessage(
	id uint,
	ticketID uint,
	senderID uint,
	body string,
	isOperator bool,
	createdAt time.Time,
) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if senderID == 0 {
		return nil, fmt.Errorf("sender ID is required")
	}

	return &Message{
		id:         id,
		ticketID:   ticketID,
		senderID:   senderID,
		body:       body,
		isOperator: isOperator,
		createdAt:  createdAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) TicketID() uint {
	return m.ticketID
}

func (m *Message) SenderID() uint {
	return m.senderID
}

func (m *Message) Body() string {
	return m.body
}

func (m *Message) IsOperator() bool {
	return m.isOperator
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// SetPersisted records the identity the store assigned on append.
func (m *Message) SetPersisted(id uint, createdAt time.Time) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	m.createdAt = createdAt
	return nil
}
