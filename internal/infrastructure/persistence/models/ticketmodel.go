package models

// TicketModel mirrors the externally owned tickets table. The conversation
// subsystem reads it for existence/ownership and updates only status and
// updated_at.
type TicketModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"column:user_id;not null;index"`
	Subject   string `gorm:"size:200;not null"`
	Status    string `gorm:"size:20;not null;index"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (TicketModel) TableName() string {
	return "tickets"
}

type UserModel struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"size:100;not null"`
	Email    string `gorm:"size:255;not null"`
	Role     string `gorm:"size:20;not null;default:user"`
}

func (UserModel) TableName() string {
	return "users"
}
