package usecases

import (
	"context"

	convdto "helpdesk/internal/application/conversation/dto"
	"helpdesk/internal/domain/conversation"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type MarkReadCommand struct {
	TicketID uint
	Actor    conversation.Actor
}

type MarkReadUseCase struct {
	ticketRepo  ticket.TicketRepository
	readRepo    conversation.ReadMarkRepository
	unreadCache UnreadTotalCache
	logger      logger.Interface
}

func NewMarkReadUseCase(
	ticketRepo ticket.TicketRepository,
	readRepo conversation.ReadMarkRepository,
	unreadCache UnreadTotalCache,
	logger logger.Interface,
) *MarkReadUseCase {
	return &MarkReadUseCase{
		ticketRepo:  ticketRepo,
		readRepo:    readRepo,
		unreadCache: unreadCache,
		logger:      logger,
	}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, cmd MarkReadCommand) (*convdto.MarkReadDTO, error) {
	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}

	if !conversation.CanAccess(cmd.Actor, t) {
		uc.logger.Warnw("actor cannot access ticket conversation", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.ID)
		return nil, errors.NewForbiddenError("you do not have access to this ticket")
	}

	if err := uc.readRepo.Upsert(ctx, cmd.TicketID, cmd.Actor.ID, biztime.NowUTC()); err != nil {
		uc.logger.Errorw("failed to mark conversation read", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.ID, "error", err)
		return nil, errors.NewInternalError("failed to mark conversation read")
	}

	if uc.unreadCache != nil {
		if err := uc.unreadCache.Invalidate(ctx, cmd.Actor.ID); err != nil {
			uc.logger.Warnw("failed to invalidate unread cache", "user_id", cmd.Actor.ID, "error", err)
		}
	}

	return &convdto.MarkReadDTO{OK: true}, nil
}
