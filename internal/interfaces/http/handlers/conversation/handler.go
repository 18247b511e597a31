package conversation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/conversation/usecases"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type ConversationHandler struct {
	postMessageUC     usecases.PostMessageExecutor
	listMessagesUC    usecases.ListMessagesExecutor
	markReadUC        usecases.MarkReadExecutor
	unreadForTicketUC usecases.UnreadForTicketExecutor
	unreadTotalUC     usecases.UnreadTotalExecutor
	logger            logger.Interface
}

func NewConversationHandler(
	postMessageUC usecases.PostMessageExecutor,
	listMessagesUC usecases.ListMessagesExecutor,
	markReadUC usecases.MarkReadExecutor,
	unreadForTicketUC usecases.UnreadForTicketExecutor,
	unreadTotalUC usecases.UnreadTotalExecutor,
	log logger.Interface,
) *ConversationHandler {
	return &ConversationHandler{
		postMessageUC:     postMessageUC,
		listMessagesUC:    listMessagesUC,
		markReadUC:        markReadUC,
		unreadForTicketUC: unreadForTicketUC,
		unreadTotalUC:     unreadTotalUC,
		logger:            log,
	}
}

// ListConversation handles GET /tickets/:id/conversation
func (h *ConversationHandler) ListConversation(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actor, err := actorFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listMessagesUC.Execute(c.Request.Context(), usecases.ListMessagesQuery{
		TicketID: ticketID,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// PostMessage handles POST /tickets/:id/conversation
func (h *ConversationHandler) PostMessage(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actor, err := actorFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for post message", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body"))
		return
	}

	result, err := h.postMessageUC.Execute(c.Request.Context(), usecases.PostMessageCommand{
		TicketID: ticketID,
		Actor:    actor,
		Body:     req.Body,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Message posted successfully")
}

// MarkRead handles POST /tickets/:id/read
func (h *ConversationHandler) MarkRead(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actor, err := actorFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.markReadUC.Execute(c.Request.Context(), usecases.MarkReadCommand{
		TicketID: ticketID,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UnreadForTicket handles GET /tickets/:id/unread
func (h *ConversationHandler) UnreadForTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actor, err := actorFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.unreadForTicketUC.Execute(c.Request.Context(), usecases.UnreadForTicketQuery{
		TicketID: ticketID,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UnreadTotal handles GET /conversation/unread
func (h *ConversationHandler) UnreadTotal(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.unreadTotalUC.Execute(c.Request.Context(), usecases.UnreadTotalQuery{
		UserID: actor.ID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
