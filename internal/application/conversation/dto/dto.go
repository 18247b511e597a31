package dto

import (
	"time"

	"helpdesk/internal/domain/conversation"
)

type MessageDTO struct {
	ID         uint      `json:"id"`
	TicketID   uint      `json:"ticket_id"`
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Body       string    `json:"body"`
	BodyHTML   string    `json:"body_html,omitempty"`
	IsOperator bool      `json:"is_operator"`
	CreatedAt  time.Time `json:"created_at"`
}

type UnreadDTO struct {
	Unread int64 `json:"unread"`
}

type MarkReadDTO struct {
	OK bool `json:"ok"`
}

func ToMessageDTO(m *conversation.Message, senderName, bodyHTML string) MessageDTO {
	return MessageDTO{
		ID:         m.ID(),
		TicketID:   m.TicketID(),
		SenderID:   m.SenderID(),
		SenderName: senderName,
		Body:       m.Body(),
		BodyHTML:   bodyHTML,
		IsOperator: m.IsOperator(),
		CreatedAt:  m.CreatedAt(),
	}
}
