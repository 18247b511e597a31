package conversation

import (
	"context"
	"time"
)

// MessageRepository is the logical append-only message log for tickets.
// Implementations hide which physical schema backs the log; callers see one
// ordered stream per ticket.
type MessageRepository interface {
	// WithTicketLock runs fn while holding the ticket's append lock. Appends
	// on one ticket must run inside fn, and fn must span the commit of the
	// enclosing transaction: the lock is what guarantees a later appender
	// observes the committed rows when it computes its created_at.
	WithTicketLock(ticketID uint, fn func() error) error

	// Append persists the message, assigning its ID and created_at. The
	// created_at values of a single ticket are strictly increasing in the
	// order appends complete; callers serialize appends per ticket through
	// WithTicketLock.
	Append(ctx context.Context, m *Message) error

	// ListByTicket returns the full conversation ordered by
	// (created_at, id) ascending. A ticket with no messages, or a store
	// whose tables are not provisioned yet, yields an empty slice.
	ListByTicket(ctx context.Context, ticketID uint) ([]*Message, error)

	// CountUnread counts messages in the ticket newer than the watermark
	// and not authored by the user.
	CountUnread(ctx context.Context, ticketID, userID uint, since time.Time) (int64, error)

	// CountUnreadTotal counts unread messages across every ticket owned by
	// the user, resolving each ticket's watermark inside a single query.
	CountUnreadTotal(ctx context.Context, userID uint) (int64, error)
}

// ReadMarkRepository tracks per (ticket, user) read watermarks with upsert
// semantics. The watermark never decreases; an upsert carrying an older
// timestamp than the stored one is ignored.
type ReadMarkRepository interface {
	Upsert(ctx context.Context, ticketID, userID uint, readAt time.Time) error
	LastRead(ctx context.Context, ticketID, userID uint) (time.Time, bool, error)
}
