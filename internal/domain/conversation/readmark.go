package conversation

import (
	"fmt"
	"time"
)

// ReadMark is the per (ticket, user) watermark of the last time the user
// looked at the conversation. It only ever moves forward.
type ReadMark struct {
	ticketID   uint
	userID     uint
	lastReadAt time.Time
}

func NewReadMark(ticketID, userID uint, lastReadAt time.Time) (*ReadMark, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &ReadMark{
		ticketID:   ticketID,
		userID:     userID,
		lastReadAt: lastReadAt,
	}, nil
}

func (r *ReadMark) TicketID() uint {
	return r.ticketID
}

func (r *ReadMark) UserID() uint {
	return r.userID
}

func (r *ReadMark) LastReadAt() time.Time {
	return r.lastReadAt
}
