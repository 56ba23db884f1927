package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SponsorModel struct {
	ID               uint                        `gorm:"primaryKey"`
	Name             string                      `gorm:"uniqueIndex;size:250;not null"`
	LoginLink        string                      `gorm:"size:250;not null"`
	HomeLink         string                      `gorm:"size:250;not null;default:''"`
	RestrictedPages  datatypes.JSONSlice[string] `gorm:"type:json"`
	LoginSelector    string                      `gorm:"size:250;not null"`
	PasswordSelector string                      `gorm:"size:250;not null"`
	SubmitSelector   string                      `gorm:"size:250;not null"`
	Username         string                      `gorm:"size:250;not null"`
	Password         string                      `gorm:"size:250;not null"`
	Status           string                      `gorm:"size:20;not null;default:active;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (SponsorModel) TableName() string {
	return "sponsors"
}

// SponsorEntityModel attaches a sponsor to an entity.
type SponsorEntityModel struct {
	SponsorID uint `gorm:"primaryKey"`
	EntityID  uint `gorm:"primaryKey;index"`
}

func (SponsorEntityModel) TableName() string {
	return "sponsor_entities"
}

type ToolModel struct {
	ID          uint   `gorm:"primaryKey"`
	EntityID    *uint  `gorm:"index"`
	Tool        string `gorm:"uniqueIndex;size:250;not null"`
	Name        string `gorm:"uniqueIndex;size:250;not null"`
	Server      string `gorm:"size:250;not null"`
	Port        int    `gorm:"not null"`
	Password    string `gorm:"type:text"`
	APILink     string `gorm:"size:250;not null;default:''"`
	Active      bool   `gorm:"not null;default:false;index"`
	Deploying   bool   `gorm:"not null;default:false"`
	Logs        string `gorm:"type:text"`
	Description string `gorm:"type:text"`
	ClientURL   string `gorm:"size:250;not null;default:''"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (ToolModel) TableName() string {
	return "tools"
}

type ShiftModel struct {
	ID        uint   `gorm:"primaryKey"`
	Value     string `gorm:"size:255;not null"`
	BgColor   string `gorm:"size:255;not null"`
	Holiday   bool   `gorm:"not null;default:false"`
	ToDelete  bool   `gorm:"column:todelete;not null"`
	Deleted   bool   `gorm:"not null;default:false"`
	UserID    *uint  `gorm:"index"`
	EntityID  *uint  `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ShiftModel) TableName() string {
	return "shifts"
}

// UserShiftModel is one planned day. Rows are removed outright.
type UserShiftModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_shifts_slot,priority:1"`
	ShiftID   uint   `gorm:"not null;uniqueIndex:idx_user_shifts_slot,priority:2"`
	Day       string `gorm:"size:10;not null;uniqueIndex:idx_user_shifts_slot,priority:3;index"`
	BoxDay    int    `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (UserShiftModel) TableName() string {
	return "user_shifts"
}
