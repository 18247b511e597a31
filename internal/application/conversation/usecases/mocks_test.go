package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/conversation"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc    func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc  func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockMessageRepository struct {
	WithTicketLockFunc   func(ticketID uint, fn func() error) error
	AppendFunc           func(ctx context.Context, msg *conversation.Message) error
	ListByTicketFunc     func(ctx context.Context, ticketID uint) ([]*conversation.Message, error)
	CountUnreadFunc      func(ctx context.Context, ticketID, userID uint, since time.Time) (int64, error)
	CountUnreadTotalFunc func(ctx context.Context, userID uint) (int64, error)
}

func (m *mockMessageRepository) WithTicketLock(ticketID uint, fn func() error) error {
	if m.WithTicketLockFunc != nil {
		return m.WithTicketLockFunc(ticketID, fn)
	}
	return fn()
}

func (m *mockMessageRepository) Append(ctx context.Context, msg *conversation.Message) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*conversation.Message, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockMessageRepository) CountUnread(ctx context.Context, ticketID, userID uint, since time.Time) (int64, error) {
	if m.CountUnreadFunc != nil {
		return m.CountUnreadFunc(ctx, ticketID, userID, since)
	}
	return 0, nil
}

func (m *mockMessageRepository) CountUnreadTotal(ctx context.Context, userID uint) (int64, error) {
	if m.CountUnreadTotalFunc != nil {
		return m.CountUnreadTotalFunc(ctx, userID)
	}
	return 0, nil
}

type mockReadMarkRepository struct {
	UpsertFunc   func(ctx context.Context, ticketID, userID uint, readAt time.Time) error
	LastReadFunc func(ctx context.Context, ticketID, userID uint) (time.Time, bool, error)
}

func (m *mockReadMarkRepository) Upsert(ctx context.Context, ticketID, userID uint, readAt time.Time) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, ticketID, userID, readAt)
	}
	return nil
}

func (m *mockReadMarkRepository) LastRead(ctx context.Context, ticketID, userID uint) (time.Time, bool, error) {
	if m.LastReadFunc != nil {
		return m.LastReadFunc(ctx, ticketID, userID)
	}
	return time.Time{}, false, nil
}

type mockUserRepository struct {
	GetByIDFunc  func(ctx context.Context, id uint) (*user.User, error)
	GetByIDsFunc func(ctx context.Context, ids []uint) (map[uint]*user.User, error)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return map[uint]*user.User{}, nil
}

type mockUnreadCache struct {
	GetTotalFunc   func(ctx context.Context, userID uint) (int64, bool, error)
	SetTotalFunc   func(ctx context.Context, userID uint, total int64) error
	InvalidateFunc func(ctx context.Context, userID uint) error
}

func (m *mockUnreadCache) GetTotal(ctx context.Context, userID uint) (int64, bool, error) {
	if m.GetTotalFunc != nil {
		return m.GetTotalFunc(ctx, userID)
	}
	return 0, false, nil
}

func (m *mockUnreadCache) SetTotal(ctx context.Context, userID uint, total int64) error {
	if m.SetTotalFunc != nil {
		return m.SetTotalFunc(ctx, userID, total)
	}
	return nil
}

func (m *mockUnreadCache) Invalidate(ctx context.Context, userID uint) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, userID)
	}
	return nil
}

type mockReplyNotifier struct {
	NotifyOperatorReplyFunc func(toAddress, toName string, ticketID uint, body string) error
}

func (m *mockReplyNotifier) NotifyOperatorReply(toAddress, toName string, ticketID uint, body string) error {
	if m.NotifyOperatorReplyFunc != nil {
		return m.NotifyOperatorReplyFunc(toAddress, toName, ticketID, body)
	}
	return nil
}

type mockRenderer struct {
	ToHTMLFunc func(markdown string) (string, error)
}

func (m *mockRenderer) ToHTML(markdown string) (string, error) {
	if m.ToHTMLFunc != nil {
		return m.ToHTMLFunc(markdown)
	}
	return "", nil
}

func (m *mockRenderer) Sanitize(htmlContent string) string {
	return htmlContent
}

func (m *mockRenderer) ToHTMLSanitized(markdown string) (string, error) {
	return m.ToHTML(markdown)
}

type mockLogger struct {
	DebugFunc  func(msg string, args ...any)
	InfoFunc   func(msg string, args ...any)
	WarnFunc   func(msg string, args ...any)
	ErrorFunc  func(msg string, args ...any)
	DebugwFunc func(msg string, keysAndValues ...interface{})
	InfowFunc  func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {
	if m.DebugFunc != nil {
		m.DebugFunc(msg, args...)
	}
}

func (m *mockLogger) Info(msg string, args ...any) {
	if m.InfoFunc != nil {
		m.InfoFunc(msg, args...)
	}
}

func (m *mockLogger) Warn(msg string, args ...any) {
	if m.WarnFunc != nil {
		m.WarnFunc(msg, args...)
	}
}

func (m *mockLogger) Error(msg string, args ...any) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(msg, args...)
	}
}

func (m *mockLogger) With(args ...any) logger.Interface {
	return m
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if m.DebugwFunc != nil {
		m.DebugwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}
