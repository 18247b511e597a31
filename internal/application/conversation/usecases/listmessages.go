package usecases

import (
	"context"

	convdto "helpdesk/internal/application/conversation/dto"
	"helpdesk/internal/domain/conversation"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

type ListMessagesQuery struct {
	TicketID uint
	Actor    conversation.Actor
}

type ListMessagesUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo conversation.MessageRepository
	userRepo    user.UserRepository
	renderer    markdown.BodyRenderer
	logger      logger.Interface
}

func NewListMessagesUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo conversation.MessageRepository,
	userRepo user.UserRepository,
	renderer markdown.BodyRenderer,
	logger logger.Interface,
) *ListMessagesUseCase {
	return &ListMessagesUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, query ListMessagesQuery) ([]convdto.MessageDTO, error) {
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

	messages, err := uc.messageRepo.ListByTicket(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to list messages", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to list messages")
	}

	names := uc.senderNames(ctx, messages)

	result := make([]convdto.MessageDTO, len(messages))
	for i, m := range messages {
		result[i] = convdto.ToMessageDTO(m, names[m.SenderID()], uc.renderBody(m.Body()))
	}
	return result, nil
}

func (uc *ListMessagesUseCase) senderNames(ctx context.Context, messages []*conversation.Message) map[uint]string {
	names := make(map[uint]string)
	if len(messages) == 0 {
		return names
	}

	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(messages))
	for _, m := range messages {
		if !seen[m.SenderID()] {
			seen[m.SenderID()] = true
			ids = append(ids, m.SenderID())
		}
	}

	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		// Names are decoration; the conversation renders without them.
		uc.logger.Warnw("failed to load sender names", "error", err)
		return names
	}

	for id, u := range users {
		names[id] = u.Username()
	}
	return names
}

func (uc *ListMessagesUseCase) renderBody(body string) string {
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
