package mappers

import (
	"helpdesk/internal/domain/conversation"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
)

// MessageMapper converts between the conversation domain entity and the two
// physical message schemas.
type MessageMapper interface {
	ResponseToDomain(model *models.ResponseModel) (*conversation.Message, error)
	LegacyToDomain(model *models.LegacyMessageModel) (*conversation.Message, error)
	ToResponseModel(m *conversation.Message, createdAtMillis int64) *models.ResponseModel
	ToLegacyModel(m *conversation.Message, createdAtMillis int64) *models.LegacyMessageModel
}

type MessageMapperImpl struct{}

func NewMessageMapper() MessageMapper {
	return &MessageMapperImpl{}
}

func (m *MessageMapperImpl) ResponseToDomain(model *models.ResponseModel) (*conversation.Message, error) {
	return conversation.ReconstructMessage(
		model.ID,
		model.TicketID,
		model.UserID,
		model.ResponseText,
		model.IsAdminResponse,
		biztime.FromMillis(model.CreatedAt),
	)
}

// LegacyToDomain maps a legacy row. The legacy table never recorded who was
// an operator, so is_operator is always false for legacy messages.
func (m *MessageMapperImpl) LegacyToDomain(model *models.LegacyMessageModel) (*conversation.Message, error) {
	return conversation.ReconstructMessage(
		model.ID,
		model.TicketID,
		model.SenderID,
		model.Message,
		false,
		biztime.FromMillis(model.CreatedAt),
	)
}

func (m *MessageMapperImpl) ToResponseModel(msg *conversation.Message, createdAtMillis int64) *models.ResponseModel {
	return &models.ResponseModel{
		TicketID:        msg.TicketID(),
		UserID:          msg.SenderID(),
		ResponseText:    msg.Body(),
		IsAdminResponse: msg.IsOperator(),
		CreatedAt:       createdAtMillis,
	}
}

func (m *MessageMapperImpl) ToLegacyModel(msg *conversation.Message, createdAtMillis int64) *models.LegacyMessageModel {
	return &models.LegacyMessageModel{
		TicketID:  msg.TicketID(),
		SenderID:  msg.SenderID(),
		Message:   msg.Body(),
		CreatedAt: createdAtMillis,
	}
}
