package migrations

import (
	"gorm.io/gorm"

	"helpdesk/internal/infrastructure/persistence/models"
)

// MigrateConversationTables provisions the current message schema and the
// read-watermark table. AutoMigrate is create-if-missing, so running it
// repeatedly is safe. The legacy ticket_messages table is intentionally not
// created here; it only exists in old deployments.
func MigrateConversationTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ResponseModel{},
		&models.ReadMarkModel{},
	)
}

// MigrateReferenceTables provisions the externally owned tables the
// subsystem reads (tickets, users). Used by tests and fresh dev setups.
func MigrateReferenceTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.TicketModel{},
		&models.UserModel{},
	)
}
