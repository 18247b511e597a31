// Package ticket holds the ticket entity as seen by the conversation
// subsystem. Tickets are created and managed elsewhere; this subsystem only
// reads them and applies the operator-reply status transition.
package ticket

import (
	"fmt"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/biztime"
)

type Ticket struct {
	id        uint
	ownerID   uint
	subject   string
	status    vo.TicketStatus
	createdAt time.Time
	updatedAt time.Time
}

func NewTicket(ownerID uint, subject string) (*Ticket, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if len(subject) == 0 {
		return nil, fmt.Errorf("subject is required")
	}

	now := biztime.NowUTC()
	return &Ticket{
		ownerID:   ownerID,
		subject:   subject,
		status:    vo.StatusOpen,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructTicket(
	id uint,
	ownerID uint,
	subject string,
	status vo.TicketStatus,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Ticket{
		id:        id,
		ownerID:   ownerID,
		subject:   subject,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) OwnerID() uint {
	return t.ownerID
}

func (t *Ticket) Subject() string {
	return t.subject
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// ApplyOperatorReply is the single policy point for the status side effect of
// an operator message: the ticket is forced to in_progress and updated_at is
// bumped. The transition is applied unconditionally, matching the behavior
// the admin panel has always had, even when the ticket is resolved or closed.
// Guarding it (e.g. skipping closed tickets) would be a one-line change here.
func (t *Ticket) ApplyOperatorReply() {
	t.status = vo.StatusInProgress
	t.updatedAt = biztime.NowUTC()
}

func (t *Ticket) IsOwnedBy(userID uint) bool {
	return t.ownerID == userID
}
