package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActorModel is the users table. Override lists are JSON arrays.
type ActorModel struct {
	ID                  uint                      `gorm:"primaryKey"`
	Name                string                    `gorm:"size:120;not null"`
	Username            string                    `gorm:"uniqueIndex;size:80;not null"`
	PasswordHash        string                    `gorm:"size:255"`
	Role                string                    `gorm:"size:20;not null;index"`
	UserType            string                    `gorm:"size:20;not null;default:PROD"`
	TeamID              *uint                     `gorm:"index"`
	EntityID            *uint                     `gorm:"index"`
	AccessTeam          datatypes.JSONSlice[uint] `gorm:"type:json"`
	AccessEntity        datatypes.JSONSlice[uint] `gorm:"type:json"`
	AccessPlanningTeams datatypes.JSONSlice[uint] `gorm:"type:json"`
	Solde               float64                   `gorm:"not null;default:0"`
	Activity            string                    `gorm:"size:20;not null;default:OFFLINE"`
	Status              string                    `gorm:"size:20;not null;default:active"`
	Visible             bool                      `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

func (ActorModel) TableName() string {
	return "actors"
}

// ActorDepartmentModel is the actor/department membership join table.
type ActorDepartmentModel struct {
	ActorID      uint `gorm:"primaryKey"`
	DepartmentID uint `gorm:"primaryKey;index"`
}

func (ActorDepartmentModel) TableName() string {
	return "actor_departments"
}

type TeamModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:120;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (TeamModel) TableName() string {
	return "teams"
}

type EntityModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:120;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (EntityModel) TableName() string {
	return "entities"
}

type DepartmentModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:120;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (DepartmentModel) TableName() string {
	return "departments"
}
