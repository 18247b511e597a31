package models

// ResponseModel is the current message schema. The admin panel writes this
// table, so deployments that have it treat it as authoritative.
type ResponseModel struct {
	ID              uint   `gorm:"primaryKey"`
	TicketID        uint   `gorm:"not null;index"`
	UserID          uint   `gorm:"not null;index"`
	ResponseText    string `gorm:"type:text;not null"`
	IsAdminResponse bool   `gorm:"not null;default:false"`
	CreatedAt       int64  `gorm:"not null;index"`
}

func (ResponseModel) TableName() string {
	return "ticket_responses"
}

// LegacyMessageModel is the pre-admin-panel message schema. It has no
// operator flag; operator-ness is simply not recorded there.
type LegacyMessageModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	SenderID  uint   `gorm:"not null;index"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"not null;index"`
}

func (LegacyMessageModel) TableName() string {
	return "ticket_messages"
}

// ReadMarkModel is the per (ticket, user) read watermark.
type ReadMarkModel struct {
	ID         uint  `gorm:"primaryKey"`
	TicketID   uint  `gorm:"not null;uniqueIndex:ux_ticket_user;index"`
	UserID     uint  `gorm:"not null;uniqueIndex:ux_ticket_user;index"`
	LastReadAt int64 `gorm:"not null"`
}

func (ReadMarkModel) TableName() string {
	return "ticket_message_reads"
}
