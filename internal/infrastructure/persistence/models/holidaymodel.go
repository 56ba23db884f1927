package models

import (
	"time"

	"gorm.io/gorm"
)

type HolidayModel struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;index"`
	From           string `gorm:"column:from_date;size:10;not null"`
	To             string `gorm:"column:to_date;size:10;not null"`
	Notes          string `gorm:"type:text"`
	CreatedBy      *uint
	IsOkByHr       bool   `gorm:"not null;default:false"`
	IsOkByChef     bool   `gorm:"not null;default:false"`
	IsRejectByHr   bool   `gorm:"not null;default:false"`
	IsRejectByChef bool   `gorm:"not null;default:false"`
	Status         string `gorm:"size:20;not null;default:Open;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time      `gorm:"index"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (HolidayModel) TableName() string {
	return "holidays"
}

type DaysoffModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:120;not null"`
	Date      string `gorm:"column:day_date;size:10;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (DaysoffModel) TableName() string {
	return "daysoff"
}
