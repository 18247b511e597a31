package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"helpdesk/internal/domain/conversation"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/db"
	appErrors "helpdesk/internal/shared/errors"
)

func newTestTxManager(t *testing.T) *db.TransactionManager {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	return db.NewTransactionManager(gdb)
}

func makeTicket(t *testing.T, id, ownerID uint, status vo.TicketStatus) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.ReconstructTicket(
		id,
		ownerID,
		"VPN keeps disconnecting",
		status,
		time.Now().Add(-2*time.Hour),
		time.Now().Add(-1*time.Hour),
	)
	require.NoError(t, err)
	return tk
}

func makeUser(t *testing.T, id uint, username, email string, role authorization.UserRole) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(id, username, email, role)
	require.NoError(t, err)
	return u
}

func TestPostMessageUseCase_Execute_OwnerPosts(t *testing.T) {
	ticketID := uint(42)
	ownerID := uint(7)

	existing := makeTicket(t, ticketID, ownerID, vo.StatusOpen)

	ticketUpdated := false
	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			ticketUpdated = true
			return nil
		},
	}

	var appended *conversation.Message
	mockMsgRepo := &mockMessageRepository{
		AppendFunc: func(ctx context.Context, msg *conversation.Message) error {
			appended = msg
			return msg.SetPersisted(100, time.Now())
		},
	}

	mockUserRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return makeUser(t, ownerID, "alice", "alice@example.com", authorization.RoleUser), nil
		},
	}

	uc := NewPostMessageUseCase(
		mockTicketRepo, mockMsgRepo, mockUserRepo,
		newTestTxManager(t), nil, nil, &mockRenderer{}, &mockLogger{},
	)

	result, err := uc.Execute(context.Background(), PostMessageCommand{
		TicketID: ticketID,
		Actor:    conversation.Actor{ID: ownerID, Role: authorization.RoleUser},
		Body:     "  still happening after reboot  ",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint(100), result.ID)
	assert.Equal(t, "still happening after reboot", result.Body)
	assert.False(t, result.IsOperator)
	require.NotNil(t, appended)
	assert.False(t, appended.IsOperator())

	// A user reply never touches the ticket status.
	assert.False(t, ticketUpdated)
	assert.True(t, existing.Status().IsOpen())
}

func TestPostMessageUseCase_Execute_OperatorReplyForcesInProgress(t *testing.T) {
	// The transition is unconditional: resolved and closed tickets are
	// reopened to in_progress by an operator reply just like open ones.
	tests := []struct {
		name          string
		initialStatus vo.TicketStatus
	}{
		{name: "open ticket", initialStatus: vo.StatusOpen},
		{name: "resolved ticket", initialStatus: vo.StatusResolved},
		{name: "closed ticket", initialStatus: vo.StatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticketID := uint(42)
			ownerID := uint(7)
			operatorID := uint(99)

			existing := makeTicket(t, ticketID, ownerID, tt.initialStatus)

			var updatedTicket *ticket.Ticket
			mockTicketRepo := &mockTicketRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
					return existing, nil
				},
				UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
					updatedTicket = tk
					return nil
				},
			}

			mockMsgRepo := &mockMessageRepository{
				AppendFunc: func(ctx context.Context, msg *conversation.Message) error {
					return msg.SetPersisted(101, time.Now())
				},
			}

			mockUserRepo := &mockUserRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
					return makeUser(t, id, "carol", "carol@example.com", authorization.RoleOperator), nil
				},
			}

			uc := NewPostMessageUseCase(
				mockTicketRepo, mockMsgRepo, mockUserRepo,
				newTestTxManager(t), nil, nil, &mockRenderer{}, &mockLogger{},
			)

			result, err := uc.Execute(context.Background(), PostMessageCommand{
				TicketID: ticketID,
				Actor:    conversation.Actor{ID: operatorID, Role: authorization.RoleOperator},
				Body:     "please try the new client build",
			})

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsOperator)
			require.NotNil(t, updatedTicket)
			assert.True(t, updatedTicket.Status().IsInProgress())
		})
	}
}

func TestPostMessageUseCase_Execute_TicketLockSpansTransaction(t *testing.T) {
	// The append lock must wrap the whole transaction, not just the insert:
	// if it were released before the commit, the next appender could read a
	// MAX(created_at) that misses the uncommitted row and reuse its
	// timestamp.
	ticketID := uint(42)
	ownerID := uint(7)
	operatorID := uint(99)

	existing := makeTicket(t, ticketID, ownerID, vo.StatusOpen)

	lockHeld := false
	var lockedTicketID uint

	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			assert.True(t, lockHeld, "status update ran outside the ticket lock")
			return nil
		},
	}

	mockMsgRepo := &mockMessageRepository{
		WithTicketLockFunc: func(id uint, fn func() error) error {
			lockedTicketID = id
			lockHeld = true
			defer func() { lockHeld = false }()
			return fn()
		},
		AppendFunc: func(ctx context.Context, msg *conversation.Message) error {
			assert.True(t, lockHeld, "append ran outside the ticket lock")
			return msg.SetPersisted(104, time.Now())
		},
	}

	mockUserRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return makeUser(t, id, "carol", "carol@example.com", authorization.RoleOperator), nil
		},
	}

	uc := NewPostMessageUseCase(
		mockTicketRepo, mockMsgRepo, mockUserRepo,
		newTestTxManager(t), nil, nil, &mockRenderer{}, &mockLogger{},
	)

	_, err := uc.Execute(context.Background(), PostMessageCommand{
		TicketID: ticketID,
		Actor:    conversation.Actor{ID: operatorID, Role: authorization.RoleOperator},
		Body:     "checking the logs",
	})

	require.NoError(t, err)
	assert.Equal(t, ticketID, lockedTicketID)
	assert.False(t, lockHeld)
}

func TestPostMessageUseCase_Execute_EmptyBody(t *testing.T) {
	uc := NewPostMessageUseCase(
		&mockTicketRepository{}, &mockMessageRepository{}, &mockUserRepository{},
		newTestTxManager(t), nil, nil, &mockRenderer{}, &mockLogger{},
	)

	result, err := uc.Execute(context.Background(), PostMessageCommand{
		TicketID: 42,
		Actor:    conversation.Actor{ID: 7, Role: authorization.RoleUser},
		Body:     "   \n\t  ",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, appErrors.IsValidationError(err))
}

func TestPostMessageUseCase_Execute_TicketNotFound(t *testing.T) {
	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return nil, appErrors.NewNotFoundError("ticket not found")
		},
	}

	uc := NewPostMessageUseCase(
		mockTicketRepo, &mockMessageRepository{}, &mockUserRepository{},
		newTestTxManager(t), nil, nil, &mockRenderer{}, &mockLogger{},
	)

	result, err := uc.Execute(context.Background(), PostMessageCommand{
		TicketID: 4242,
		Actor:    conversation.Actor{ID: 7, Role: authorization.RoleUser},
		Body:     "hello?",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, appErrors.IsNotFoundError(err))
}

func TestPostMessageUseCase_Execute_StrangerForbidden(t *testing.T) {
	existing := makeTicket(t, 42, 7, vo.StatusOpen)

	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}

	uc := NewPostMessageUseCase(
		mockTicketRepo, &mockMessageRepository{}, &mockUserRepository{},
		newTestTxManager(t), nil, nil, &mockRenderer{}, &mockLogger{},
	)

	result, err := uc.Execute(context.Background(), PostMessageCommand{
		TicketID: 42,
		Actor:    conversation.Actor{ID: 8, Role: authorization.RoleUser},
		Body:     "let me in",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, appErrors.IsForbiddenError(err))
	// The message must not reveal whether the ticket exists.
	assert.NotContains(t, err.Error(), "not found")
}

func TestPostMessageUseCase_Execute_AppendFailure(t *testing.T) {
	existing := makeTicket(t, 42, 7, vo.StatusOpen)

	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}

	mockMsgRepo := &mockMessageRepository{
		AppendFunc: func(ctx context.Context, msg *conversation.Message) error {
			return errors.New("database error")
		},
	}

	uc := NewPostMessageUseCase(
		mockTicketRepo, mockMsgRepo, &mockUserRepository{},
		newTestTxManager(t), nil, nil, &mockRenderer{}, &mockLogger{},
	)

	result, err := uc.Execute(context.Background(), PostMessageCommand{
		TicketID: 42,
		Actor:    conversation.Actor{ID: 7, Role: authorization.RoleUser},
		Body:     "does this save?",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	appErr := appErrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, appErrors.ErrorTypeInternal, appErr.Type)
}

func TestPostMessageUseCase_Execute_OperatorReplyNotifiesOwner(t *testing.T) {
	ticketID := uint(42)
	ownerID := uint(7)
	operatorID := uint(99)

	existing := makeTicket(t, ticketID, ownerID, vo.StatusOpen)

	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}

	mockMsgRepo := &mockMessageRepository{
		AppendFunc: func(ctx context.Context, msg *conversation.Message) error {
			return msg.SetPersisted(102, time.Now())
		},
	}

	mockUserRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			if id == ownerID {
				return makeUser(t, ownerID, "alice", "alice@example.com", authorization.RoleUser), nil
			}
			return makeUser(t, id, "carol", "carol@example.com", authorization.RoleOperator), nil
		},
	}

	var notifiedAddress string
	var notifiedTicketID uint
	notifier := &mockReplyNotifier{
		NotifyOperatorReplyFunc: func(toAddress, toName string, tid uint, body string) error {
			notifiedAddress = toAddress
			notifiedTicketID = tid
			return nil
		},
	}

	var invalidatedUserID uint
	cache := &mockUnreadCache{
		InvalidateFunc: func(ctx context.Context, userID uint) error {
			invalidatedUserID = userID
			return nil
		},
	}

	uc := NewPostMessageUseCase(
		mockTicketRepo, mockMsgRepo, mockUserRepo,
		newTestTxManager(t), cache, notifier, &mockRenderer{}, &mockLogger{},
	)

	_, err := uc.Execute(context.Background(), PostMessageCommand{
		TicketID: ticketID,
		Actor:    conversation.Actor{ID: operatorID, Role: authorization.RoleOperator},
		Body:     "should be fixed now",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", notifiedAddress)
	assert.Equal(t, ticketID, notifiedTicketID)
	assert.Equal(t, ownerID, invalidatedUserID)
}

func TestPostMessageUseCase_Execute_OwnerReplyDoesNotNotify(t *testing.T) {
	existing := makeTicket(t, 42, 7, vo.StatusOpen)

	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}

	mockMsgRepo := &mockMessageRepository{
		AppendFunc: func(ctx context.Context, msg *conversation.Message) error {
			return msg.SetPersisted(103, time.Now())
		},
	}

	notified := false
	notifier := &mockReplyNotifier{
		NotifyOperatorReplyFunc: func(toAddress, toName string, tid uint, body string) error {
			notified = true
			return nil
		},
	}

	uc := NewPostMessageUseCase(
		mockTicketRepo, mockMsgRepo, &mockUserRepository{},
		newTestTxManager(t), nil, notifier, &mockRenderer{}, &mockLogger{},
	)

	_, err := uc.Execute(context.Background(), PostMessageCommand{
		TicketID: 42,
		Actor:    conversation.Actor{ID: 7, Role: authorization.RoleUser},
		Body:     "thanks, checking",
	})

	require.NoError(t, err)
	assert.False(t, notified)
}
