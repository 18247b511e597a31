package conversation

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "helpdesk/internal/domain/conversation"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
)

// PostMessageRequest is the body of POST /tickets/:id/conversation.
type PostMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

func parseTicketID(c *gin.Context) (uint, error) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid ticket ID")
	}
	return uint(id), nil
}

func actorFromContext(c *gin.Context) (domain.Actor, error) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return domain.Actor{}, errors.NewUnauthorizedError("authentication required")
	}
	id, ok := userID.(uint)
	if !ok || id == 0 {
		return domain.Actor{}, errors.NewUnauthorizedError("authentication required")
	}

	role := authorization.RoleUser
	if roleValue, exists := c.Get(constants.ContextKeyUserRole); exists {
		if roleStr, ok := roleValue.(string); ok {
			role = authorization.ParseUserRole(roleStr)
		}
	}

	return domain.Actor{ID: id, Role: role}, nil
}
