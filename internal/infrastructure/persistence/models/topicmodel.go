package models

import (
	"time"

	"gorm.io/gorm"
)

type TopicModel struct {
	ID          uint   `gorm:"primaryKey"`
	FromID      uint   `gorm:"not null;index"`
	ToID        uint   `gorm:"not null;index"`
	Subject     string `gorm:"size:255;not null"`
	Status      string `gorm:"size:20;not null;default:OPEN"`
	UpdatedByID *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time      `gorm:"index"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (TopicModel) TableName() string {
	return "topics"
}

type ConversationModel struct {
	ID        uint   `gorm:"primaryKey"`
	TopicID   uint   `gorm:"not null;index"`
	FromID    uint   `gorm:"not null;index"`
	ToID      uint   `gorm:"not null;index"`
	Msg       string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ConversationModel) TableName() string {
	return "conversations"
}

type ConversationReadModel struct {
	ID             uint      `gorm:"primaryKey"`
	ConversationID uint      `gorm:"not null;uniqueIndex:idx_conversation_reads_pair"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_conversation_reads_pair;index"`
	ReadAt         time.Time `gorm:"not null"`
}

func (ConversationReadModel) TableName() string {
	return "conversation_reads"
}
