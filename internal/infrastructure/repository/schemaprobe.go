package repository

import (
	"sync/atomic"

	"gorm.io/gorm"

	"helpdesk/internal/infrastructure/persistence/migrations"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/logger"
)

// MessageSchema identifies which physical message table backs the logical
// conversation log.
type MessageSchema int32

const (
	// SchemaUnknown means neither table exists yet. Reads degrade to an
	// empty conversation; the first write provisions SchemaResponses.
	SchemaUnknown MessageSchema = iota
	// SchemaResponses is the current schema (ticket_responses).
	SchemaResponses
	// SchemaLegacy is the old schema (ticket_messages), found in
	// deployments that predate the admin panel.
	SchemaLegacy
)

func (s MessageSchema) String() string {
	switch s {
	case SchemaResponses:
		return "responses"
	case SchemaLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// SchemaProbe resolves the active message schema once per process and caches
// the answer. Only positive results are cached: an unprovisioned store keeps
// probing until a write creates the tables. A concurrent first use may race
// on the cache, but recomputation is idempotent and converges to the same
// value, so the race is benign.
type SchemaProbe struct {
	db        *gorm.DB
	cached    atomic.Int32
	readMarks atomic.Bool
	logger    logger.Interface
}

func NewSchemaProbe(db *gorm.DB, logger logger.Interface) *SchemaProbe {
	return &SchemaProbe{db: db, logger: logger}
}

// Resolve returns the active schema, probing table existence on first use.
func (p *SchemaProbe) Resolve() MessageSchema {
	if s := MessageSchema(p.cached.Load()); s != SchemaUnknown {
		return s
	}

	migrator := p.db.Migrator()
	var s MessageSchema
	switch {
	case migrator.HasTable(&models.ResponseModel{}):
		s = SchemaResponses
	case migrator.HasTable(&models.LegacyMessageModel{}):
		s = SchemaLegacy
	default:
		return SchemaUnknown
	}

	p.cached.Store(int32(s))
	p.logger.Infow("message schema resolved", "schema", s.String())
	return s
}

// EnsureProvisioned resolves the schema, creating the current tables when
// neither schema exists. Provisioning failures are returned to fail the
// current request only; the probe stays unresolved so a later request can
// retry.
func (p *SchemaProbe) EnsureProvisioned() (MessageSchema, error) {
	if s := p.Resolve(); s != SchemaUnknown {
		return s, nil
	}

	if err := migrations.MigrateConversationTables(p.db); err != nil {
		p.logger.Errorw("failed to provision message tables", "error", err)
		return SchemaUnknown, err
	}

	p.cached.Store(int32(SchemaResponses))
	p.logger.Infow("message tables provisioned", "schema", SchemaResponses.String())
	return SchemaResponses, nil
}

// EnsureReadMarksTable creates the watermark table when a deployment
// predates it. Legacy installs have ticket_messages but never had
// ticket_message_reads until the first unread computation touched it.
func (p *SchemaProbe) EnsureReadMarksTable() error {
	if p.readMarks.Load() {
		return nil
	}

	migrator := p.db.Migrator()
	if !migrator.HasTable(&models.ReadMarkModel{}) {
		if err := migrator.CreateTable(&models.ReadMarkModel{}); err != nil {
			// Another process may have won the race.
			if !migrator.HasTable(&models.ReadMarkModel{}) {
				p.logger.Errorw("failed to provision read-marks table", "error", err)
				return err
			}
		}
	}

	p.readMarks.Store(true)
	return nil
}
