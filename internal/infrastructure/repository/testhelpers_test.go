package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"helpdesk/internal/domain/conversation"
	"helpdesk/internal/infrastructure/persistence/migrations"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/logger"
)

// newTestDB opens a fresh in-memory database with no tables at all,
// mirroring a deployment before any schema was provisioned.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	return db
}

// newProvisionedDB opens a database with the current schema and the
// reference tables already in place.
func newProvisionedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, migrations.MigrateConversationTables(db))
	require.NoError(t, migrations.MigrateReferenceTables(db))
	return db
}

// newLegacyDB opens a database that only has the old ticket_messages table,
// mirroring a deployment that predates the admin panel.
func newLegacyDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.LegacyMessageModel{}))
	require.NoError(t, migrations.MigrateReferenceTables(db))
	return db
}

func testLogger() logger.Interface {
	return &noopLogger{}
}

type noopLogger struct{}

func (l *noopLogger) Debug(msg string, args ...any)                   {}
func (l *noopLogger) Info(msg string, args ...any)                    {}
func (l *noopLogger) Warn(msg string, args ...any)                    {}
func (l *noopLogger) Error(msg string, args ...any)                   {}
func (l *noopLogger) With(args ...any) logger.Interface               { return l }
func (l *noopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (l *noopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *noopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (l *noopLogger) Errorw(msg string, keysAndValues ...interface{}) {}

func newMessage(t *testing.T, ticketID, senderID uint, body string, isOperator bool) *conversation.Message {
	t.Helper()
	m, err := conversation.NewMessage(ticketID, senderID, body, isOperator)
	require.NoError(t, err)
	return m
}

func seedResponse(t *testing.T, db *gorm.DB, ticketID, userID uint, body string, isAdmin bool, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.ResponseModel{
		TicketID:        ticketID,
		UserID:          userID,
		ResponseText:    body,
		IsAdminResponse: isAdmin,
		CreatedAt:       biztime.ToMillis(createdAt),
	}).Error)
}

func seedTicket(t *testing.T, db *gorm.DB, id, ownerID uint, status string) {
	t.Helper()
	now := biztime.ToMillis(time.Now())
	require.NoError(t, db.Create(&models.TicketModel{
		ID:        id,
		UserID:    ownerID,
		Subject:   "seeded ticket",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)
}

func seedUser(t *testing.T, db *gorm.DB, id uint, username, email, role string) {
	t.Helper()
	require.NoError(t, db.Create(&models.UserModel{
		ID:       id,
		Username: username,
		Email:    email,
		Role:     role,
	}).Error)
}
