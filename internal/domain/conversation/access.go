package conversation

import (
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
)

// Actor identifies the authenticated caller of a conversation operation.
type Actor struct {
	ID   uint
	Role authorization.UserRole
}

func (a Actor) IsOperator() bool {
	return a.Role.IsOperator()
}

// CanAccess is the single authorization predicate for every conversation
// entry point: the ticket owner and operators may read and write. Callers
// must resolve ticket existence before consulting this predicate.
func CanAccess(actor Actor, t *ticket.Ticket) bool {
	if actor.Role.IsOperator() {
		return true
	}
	return t.IsOwnedBy(actor.ID)
}
