package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CrewPosition struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Position  string    `gorm:"unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (position *CrewPosition) BeforeCreate(tx *gorm.DB) (err error) {
	if position.ID == uuid.Nil {
		position.ID = uuid.New()
	}
	return
}

type Crew struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	FirstName  string    `gorm:"not null"`
	LastName   string    `gorm:"not null"`
	PositionID uuid.UUID `gorm:"type:uuid;not null"`
	Position   CrewPosition `gorm:"constraint:OnDelete:CASCADE"`
	Airplanes  []Airplane   `gorm:"many2many:airplane_crew;"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (crew *Crew) BeforeCreate(tx *gorm.DB) (err error) {
	if crew.ID == uuid.Nil {
		crew.ID = uuid.New()
	}
	return
}
