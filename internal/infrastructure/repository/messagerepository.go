package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"helpdesk/internal/domain/conversation"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/logger"
)

// MessageRepository implements conversation.MessageRepository over the two
// physical schemas, dispatching on the probe's resolution.
type MessageRepository struct {
	db     *gorm.DB
	probe  *SchemaProbe
	mapper mappers.MessageMapper
	logger logger.Interface

	// Per-ticket append locks, held by callers via WithTicketLock. The
	// clock offers no monotonicity guarantee under concurrent writers, so
	// appends on one ticket are serialized and colliding timestamps bumped.
	ticketLocks sync.Map // map[uint]*sync.Mutex
}

func NewMessageRepository(gormDB *gorm.DB, probe *SchemaProbe, log logger.Interface) *MessageRepository {
	return &MessageRepository{
		db:     gormDB,
		probe:  probe,
		mapper: mappers.NewMessageMapper(),
		logger: log,
	}
}

func (r *MessageRepository) lockTicket(ticketID uint) *sync.Mutex {
	v, _ := r.ticketLocks.LoadOrStore(ticketID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// WithTicketLock holds the ticket's append lock for the duration of fn. The
// caller wraps its whole transaction in fn: releasing the lock before the
// commit would let the next appender snapshot-read a MAX(created_at) that
// misses the still-uncommitted row and reuse its timestamp.
func (r *MessageRepository) WithTicketLock(ticketID uint, fn func() error) error {
	mu := r.lockTicket(ticketID)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// Append persists the message into whichever schema is active, provisioning
// the current schema when none exists yet. created_at is strictly increasing
// per ticket: under the ticket's append lock, a timestamp that does not
// exceed the newest stored one is bumped one millisecond past it.
func (r *MessageRepository) Append(ctx context.Context, m *conversation.Message) error {
	schema, err := r.probe.EnsureProvisioned()
	if err != nil {
		return fmt.Errorf("message store unavailable: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)

	createdAt := biztime.ToMillis(biztime.NowUTC())
	latest, err := r.latestCreatedAt(tx, schema, m.TicketID())
	if err != nil {
		return err
	}
	if createdAt <= latest {
		createdAt = latest + 1
	}

	switch schema {
	case SchemaLegacy:
		model := r.mapper.ToLegacyModel(m, createdAt)
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to append message: %w", err)
		}
		return m.SetPersisted(model.ID, biztime.FromMillis(createdAt))
	default:
		model := r.mapper.ToResponseModel(m, createdAt)
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to append message: %w", err)
		}
		return m.SetPersisted(model.ID, biztime.FromMillis(createdAt))
	}
}

func (r *MessageRepository) latestCreatedAt(tx *gorm.DB, schema MessageSchema, ticketID uint) (int64, error) {
	var latest *int64
	var err error
	switch schema {
	case SchemaLegacy:
		err = tx.Model(&models.LegacyMessageModel{}).
			Where("ticket_id = ?", ticketID).
			Select("MAX(created_at)").
			Scan(&latest).Error
	default:
		err = tx.Model(&models.ResponseModel{}).
			Where("ticket_id = ?", ticketID).
			Select("MAX(created_at)").
			Scan(&latest).Error
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read latest message time: %w", err)
	}
	if latest == nil {
		return 0, nil
	}
	return *latest, nil
}

// ListByTicket returns the conversation ordered by (created_at, id). When no
// schema is provisioned yet the conversation is empty, not an error.
func (r *MessageRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*conversation.Message, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	switch r.probe.Resolve() {
	case SchemaResponses:
		var rows []models.ResponseModel
		if err := tx.
			Where("ticket_id = ?", ticketID).
			Order("created_at ASC, id ASC").
			Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
		result := make([]*conversation.Message, len(rows))
		for i := range rows {
			m, err := r.mapper.ResponseToDomain(&rows[i])
			if err != nil {
				return nil, err
			}
			result[i] = m
		}
		return result, nil

	case SchemaLegacy:
		var rows []models.LegacyMessageModel
		if err := tx.
			Where("ticket_id = ?", ticketID).
			Order("created_at ASC, id ASC").
			Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
		result := make([]*conversation.Message, len(rows))
		for i := range rows {
			m, err := r.mapper.LegacyToDomain(&rows[i])
			if err != nil {
				return nil, err
			}
			result[i] = m
		}
		return result, nil

	default:
		return []*conversation.Message{}, nil
	}
}

// CountUnread counts messages newer than the watermark that the user did not
// author. Exclusion is by sender, never by the operator flag: the legacy
// schema has no such flag and both schemas must count identically.
func (r *MessageRepository) CountUnread(ctx context.Context, ticketID, userID uint, since time.Time) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	sinceMillis := biztime.ToMillis(since)

	var count int64
	switch r.probe.Resolve() {
	case SchemaResponses:
		if err := tx.Model(&models.ResponseModel{}).
			Where("ticket_id = ?", ticketID).
			Where("created_at > ?", sinceMillis).
			Where("user_id <> ?", userID).
			Count(&count).Error; err != nil {
			return 0, fmt.Errorf("failed to count unread messages: %w", err)
		}
	case SchemaLegacy:
		if err := tx.Model(&models.LegacyMessageModel{}).
			Where("ticket_id = ?", ticketID).
			Where("created_at > ?", sinceMillis).
			Where("sender_id <> ?", userID).
			Count(&count).Error; err != nil {
			return 0, fmt.Errorf("failed to count unread messages: %w", err)
		}
	}
	return count, nil
}

// CountUnreadTotal counts unread messages across every ticket the user owns
// in one aggregate query, resolving each ticket's watermark in a subquery.
// Browser tabs poll this every few seconds; a per-ticket round trip here
// would not survive that load.
func (r *MessageRepository) CountUnreadTotal(ctx context.Context, userID uint) (int64, error) {
	if err := r.probe.EnsureReadMarksTable(); err != nil {
		return 0, fmt.Errorf("read marks unavailable: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)

	watermarks := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.ReadMarkModel{}).
		Select("ticket_id, MAX(last_read_at) AS last_read").
		Where("user_id = ?", userID).
		Group("ticket_id")

	var count int64
	switch r.probe.Resolve() {
	case SchemaResponses:
		if err := tx.Model(&models.ResponseModel{}).
			Joins("JOIN tickets ON tickets.id = ticket_responses.ticket_id AND tickets.user_id = ?", userID).
			Joins("LEFT JOIN (?) reads ON reads.ticket_id = ticket_responses.ticket_id", watermarks).
			Where("ticket_responses.created_at > COALESCE(reads.last_read, 0)").
			Where("ticket_responses.user_id <> ?", userID).
			Count(&count).Error; err != nil {
			return 0, fmt.Errorf("failed to count total unread messages: %w", err)
		}
	case SchemaLegacy:
		if err := tx.Model(&models.LegacyMessageModel{}).
			Joins("JOIN tickets ON tickets.id = ticket_messages.ticket_id AND tickets.user_id = ?", userID).
			Joins("LEFT JOIN (?) reads ON reads.ticket_id = ticket_messages.ticket_id", watermarks).
			Where("ticket_messages.created_at > COALESCE(reads.last_read, 0)").
			Where("ticket_messages.sender_id <> ?", userID).
			Count(&count).Error; err != nil {
			return 0, fmt.Errorf("failed to count total unread messages: %w", err)
		}
	}
	return count, nil
}
