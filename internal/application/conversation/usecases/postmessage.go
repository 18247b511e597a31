package usecases

import (
	"context"
	"strings"

	convdto "helpdesk/internal/application/conversation/dto"
	"helpdesk/internal/domain/conversation"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

type PostMessageCommand struct {
	TicketID uint
	Actor    conversation.Actor
	Body     string
}

type PostMessageUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo conversation.MessageRepository
	userRepo    user.UserRepository
	txMgr       *db.TransactionManager
	unreadCache UnreadTotalCache
	notifier    ReplyNotifier
	renderer    markdown.BodyRenderer
	logger      logger.Interface
}

func NewPostMessageUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo conversation.MessageRepository,
	userRepo user.UserRepository,
	txMgr *db.TransactionManager,
	unreadCache UnreadTotalCache,
	notifier ReplyNotifier,
	renderer markdown.BodyRenderer,
	logger logger.Interface,
) *PostMessageUseCase {
	return &PostMessageUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		txMgr:       txMgr,
		unreadCache: unreadCache,
		notifier:    notifier,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *PostMessageUseCase) Execute(ctx context.Context, cmd PostMessageCommand) (*convdto.MessageDTO, error) {
	uc.logger.Infow("executing post message use case", "ticket_id", cmd.TicketID, "sender_id", cmd.Actor.ID)

	if strings.TrimSpace(cmd.Body) == "" {
		return nil, errors.NewValidationError("message body cannot be empty")
	}

	// Existence resolves before authorization; the forbidden message below
	// never confirms whether a ticket exists.
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

	isOperator := cmd.Actor.IsOperator()
	msg, err := conversation.NewMessage(cmd.TicketID, cmd.Actor.ID, cmd.Body, isOperator)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	// The append and the status transition commit together: a crash between
	// them must not leave a posted operator reply on a ticket that still
	// looks untouched. The ticket's append lock spans the commit so the next
	// appender reads this message's created_at when computing its own.
	txErr := uc.messageRepo.WithTicketLock(cmd.TicketID, func() error {
		return uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := uc.messageRepo.Append(txCtx, msg); err != nil {
				return err
			}

			if isOperator {
				t.ApplyOperatorReply()
				if err := uc.ticketRepo.Update(txCtx, t); err != nil {
					return err
				}
			}

			return nil
		})
	})
	if txErr != nil {
		uc.logger.Errorw("failed to post message", "ticket_id", cmd.TicketID, "error", txErr)
		return nil, errors.NewInternalError("failed to post message")
	}

	uc.invalidateUnread(ctx, t.OwnerID())
	if isOperator && t.OwnerID() != cmd.Actor.ID {
		uc.notifyOwner(ctx, t, msg)
	}

	result := convdto.ToMessageDTO(msg, uc.senderName(ctx, cmd.Actor.ID), uc.renderBody(msg.Body()))
	uc.logger.Infow("message posted", "message_id", msg.ID(), "ticket_id", cmd.TicketID, "is_operator", isOperator)
	return &result, nil
}

func (uc *PostMessageUseCase) invalidateUnread(ctx context.Context, ownerID uint) {
	if uc.unreadCache == nil {
		return
	}
	if err := uc.unreadCache.Invalidate(ctx, ownerID); err != nil {
		uc.logger.Warnw("failed to invalidate unread cache", "user_id", ownerID, "error", err)
	}
}

func (uc *PostMessageUseCase) notifyOwner(ctx context.Context, t *ticket.Ticket, msg *conversation.Message) {
	if uc.notifier == nil {
		return
	}

	owner, err := uc.userRepo.GetByID(ctx, t.OwnerID())
	if err != nil {
		uc.logger.Warnw("failed to load ticket owner for notification", "ticket_id", t.ID(), "error", err)
		return
	}

	if err := uc.notifier.NotifyOperatorReply(owner.Email(), owner.Username(), t.ID(), msg.Body()); err != nil {
		uc.logger.Warnw("failed to send reply notification", "ticket_id", t.ID(), "error", err)
	}
}

func (uc *PostMessageUseCase) senderName(ctx context.Context, senderID uint) string {
	u, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return ""
	}
	return u.Username()
}

func (uc *PostMessageUseCase) renderBody(body string) string {
	if uc.renderer == nil {
		return ""
	}
	html, err := uc.renderer.ToHTMLSanitized(body)
	if err != nil {
		uc.logger.Warnw("failed to render message body", "error", err)
		return ""
	}
	return html
}
