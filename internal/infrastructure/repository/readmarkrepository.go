package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/db"
	appErrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

// ReadMarkRepository implements conversation.ReadMarkRepository with
// monotonic upsert semantics on the (ticket_id, user_id) composite key.
type ReadMarkRepository struct {
	db     *gorm.DB
	probe  *SchemaProbe
	logger logger.Interface
}

func NewReadMarkRepository(gormDB *gorm.DB, probe *SchemaProbe, log logger.Interface) *ReadMarkRepository {
	return &ReadMarkRepository{db: gormDB, probe: probe, logger: log}
}

// Upsert advances the watermark to readAt. A readAt at or before the stored
// watermark is ignored: the guarded UPDATE matches nothing and the row is
// left untouched, so the watermark never moves backward.
func (r *ReadMarkRepository) Upsert(ctx context.Context, ticketID, userID uint, readAt time.Time) error {
	if err := r.probe.EnsureReadMarksTable(); err != nil {
		return fmt.Errorf("read marks unavailable: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	readAtMillis := biztime.ToMillis(readAt)

	res := tx.Model(&models.ReadMarkModel{}).
		Where("ticket_id = ? AND user_id = ? AND last_read_at < ?", ticketID, userID, readAtMillis).
		Update("last_read_at", readAtMillis)
	if res.Error != nil {
		return fmt.Errorf("failed to update read mark: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Nothing updated: either the row does not exist yet, or the stored
	// watermark is already at or past readAt.
	var count int64
	if err := tx.Model(&models.ReadMarkModel{}).
		Where("ticket_id = ? AND user_id = ?", ticketID, userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check read mark: %w", err)
	}
	if count > 0 {
		return nil
	}

	mark := &models.ReadMarkModel{
		TicketID:   ticketID,
		UserID:     userID,
		LastReadAt: readAtMillis,
	}
	if err := tx.Create(mark).Error; err != nil {
		// A concurrent first read won the insert race; its watermark is
		// now-ish too, which satisfies the caller.
		if appErrors.IsDuplicateError(err) {
			return nil
		}
		return fmt.Errorf("failed to create read mark: %w", err)
	}
	return nil
}

// LastRead returns the stored watermark, reporting absence instead of
// erroring so callers can fall back to epoch zero.
func (r *ReadMarkRepository) LastRead(ctx context.Context, ticketID, userID uint) (time.Time, bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var mark models.ReadMarkModel
	err := tx.
		Where("ticket_id = ? AND user_id = ?", ticketID, userID).
		First(&mark).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return time.Time{}, false, nil
		}
		// An unprovisioned table reads as "never read" rather than an error.
		if !r.db.Migrator().HasTable(&models.ReadMarkModel{}) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to load read mark: %w", err)
	}

	return biztime.FromMillis(mark.LastReadAt), true, nil
}
