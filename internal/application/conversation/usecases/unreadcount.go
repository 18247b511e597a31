package usecases

import (
	"context"
	"time"

	convdto "helpdesk/internal/application/conversation/dto"
	"helpdesk/internal/domain/conversation"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type UnreadForTicketQuery struct {
	TicketID uint
	Actor    conversation.Actor
}

type UnreadTotalQuery struct {
	UserID uint
}

type UnreadForTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo conversation.MessageRepository
	readRepo    conversation.ReadMarkRepository
	logger      logger.Interface
}

func NewUnreadForTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo conversation.MessageRepository,
	readRepo conversation.ReadMarkRepository,
	logger logger.Interface,
) *UnreadForTicketUseCase {
	return &UnreadForTicketUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		readRepo:    readRepo,
		logger:      logger,
	}
}

func (uc *UnreadForTicketUseCase) Execute(ctx context.Context, query UnreadForTicketQuery) (*convdto.UnreadDTO, error) {
	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}

	if !conversation.CanAccess(query.Actor, t) {
		uc.logger.Warnw("actor cannot access ticket conversation", "ticket_id", query.TicketID, "actor_id", query.Actor.ID)
		return nil, errors.NewForbiddenError("you do not have access to this ticket")
	}

	since, found, err := uc.readRepo.LastRead(ctx, query.TicketID, query.Actor.ID)
	if err != nil {
		uc.logger.Errorw("failed to load read watermark", "ticket_id", query.TicketID, "user_id", query.Actor.ID, "error", err)
		return nil, errors.NewInternalError("failed to count unread messages")
	}
	if !found {
		// No watermark means nothing has been read yet.
		since = time.Unix(0, 0).UTC()
	}

	count, err := uc.messageRepo.CountUnread(ctx, query.TicketID, query.Actor.ID, since)
	if err != nil {
		uc.logger.Errorw("failed to count unread messages", "ticket_id", query.TicketID, "user_id", query.Actor.ID, "error", err)
		return nil, errors.NewInternalError("failed to count unread messages")
	}

	return &convdto.UnreadDTO{Unread: count}, nil
}

type UnreadTotalUseCase struct {
	messageRepo conversation.MessageRepository
	unreadCache UnreadTotalCache
	logger      logger.Interface
}

func NewUnreadTotalUseCase(
	messageRepo conversation.MessageRepository,
	unreadCache UnreadTotalCache,
	logger logger.Interface,
) *UnreadTotalUseCase {
	return &UnreadTotalUseCase{
		messageRepo: messageRepo,
		unreadCache: unreadCache,
		logger:      logger,
	}
}

func (uc *UnreadTotalUseCase) Execute(ctx context.Context, query UnreadTotalQuery) (*convdto.UnreadDTO, error) {
	if uc.unreadCache != nil {
		total, hit, err := uc.unreadCache.GetTotal(ctx, query.UserID)
		if err != nil {
			uc.logger.Warnw("unread cache lookup failed", "user_id", query.UserID, "error", err)
		} else if hit {
			return &convdto.UnreadDTO{Unread: total}, nil
		}
	}

	total, err := uc.messageRepo.CountUnreadTotal(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to count total unread messages", "user_id", query.UserID, "error", err)
		return nil, errors.NewInternalError("failed to count unread messages")
	}

	if uc.unreadCache != nil {
		if err := uc.unreadCache.SetTotal(ctx, query.UserID, total); err != nil {
			uc.logger.Warnw("failed to store unread total in cache", "user_id", query.UserID, "error", err)
		}
	}

	return &convdto.UnreadDTO{Unread: total}, nil
}
