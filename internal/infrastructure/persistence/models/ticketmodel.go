package models

import (
	"time"

	"gorm.io/gorm"
)

type TicketModel struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           uint   `gorm:"not null;index"`
	AssignedTo       *uint  `gorm:"index"`
	EntityID         *uint  `gorm:"index"`
	DepartmentID     *uint  `gorm:"column:departement_id;index"`
	IssuerTeamID     *uint  `gorm:"index"`
	TargetTeamID     *uint  `gorm:"index"`
	Status           string `gorm:"size:20;not null;index"`
	Severity         string `gorm:"size:20;not null"`
	Type             string `gorm:"size:20;not null;default:Support"`
	Subject          string `gorm:"size:255;not null"`
	RelatedRessource string `gorm:"size:255"`
	Notes            string `gorm:"type:text"`
	ClosedBy         *uint
	ResolvedBy       *uint
	LastUpdate       *time.Time
	Archived         bool `gorm:"not null;default:false;index"`
	Pinned           bool `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time      `gorm:"index"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (TicketModel) TableName() string {
	return "tickets"
}

type MessageModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null;index"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (MessageModel) TableName() string {
	return "messages"
}

// MessageReadModel marks that UserID has retrieved MessageID. The unique
// pair makes marking idempotent.
type MessageReadModel struct {
	ID        uint      `gorm:"primaryKey"`
	MessageID uint      `gorm:"not null;uniqueIndex:idx_message_reads_pair"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_message_reads_pair;index"`
	ReadAt    time.Time `gorm:"not null"`
}

func (MessageReadModel) TableName() string {
	return "message_reads"
}
