package usecases

import (
	"context"

	"helpdesk/internal/application/conversation/dto"
)

type PostMessageExecutor interface {
	Execute(ctx context.Context, cmd PostMessageCommand) (*dto.MessageDTO, error)
}

type ListMessagesExecutor interface {
	Execute(ctx context.Context, query ListMessagesQuery) ([]dto.MessageDTO, error)
}

type MarkReadExecutor interface {
	Execute(ctx context.Context, cmd MarkReadCommand) (*dto.MarkReadDTO, error)
}

type UnreadForTicketExecutor interface {
	Execute(ctx context.Context, query UnreadForTicketQuery) (*dto.UnreadDTO, error)
}

type UnreadTotalExecutor interface {
	Execute(ctx context.Context, query UnreadTotalQuery) (*dto.UnreadDTO, error)
}

// UnreadTotalCache is the best-effort badge cache. A nil cache disables it.
type UnreadTotalCache interface {
	GetTotal(ctx context.Context, userID uint) (int64, bool, error)
	SetTotal(ctx context.Context, userID uint, total int64) error
	Invalidate(ctx context.Context, userID uint) error
}

// ReplyNotifier delivers the operator-reply notification to a ticket owner.
// A nil notifier disables it.
type ReplyNotifier interface {
	NotifyOperatorReply(toAddress, toName string, ticketID uint, body string) error
}
