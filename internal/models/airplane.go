package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AirplaneType struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	Brand             string    `gorm:"not null"`
	Model             string    `gorm:"not null"`
	DefaultRows       int       `gorm:"not null"`
	DefaultSeatsInRow int       `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (airplaneType *AirplaneType) BeforeCreate(tx *gorm.DB) (err error) {
	if airplaneType.ID == uuid.Nil {
		airplaneType.ID = uuid.New()
	}
	return
}

// Airplane copies Rows and SeatsInRow from its type's defaults at creation
// time; the seat grid of an existing airplane never changes afterwards.
type Airplane struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Name           string    `gorm:"not null"`
	Rows           int       `gorm:"not null"`
	SeatsInRow     int       `gorm:"not null"`
	AirplaneTypeID uuid.UUID `gorm:"type:uuid;not null"`
	AirplaneType   AirplaneType `gorm:"constraint:OnDelete:CASCADE"`
	Crew           []Crew       `gorm:"many2many:airplane_crew;"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (airplane *Airplane) BeforeCreate(tx *gorm.DB) (err error) {
	if airplane.ID == uuid.Nil {
		airplane.ID = uuid.New()
	}
	return
}

// Capacity is derived, never stored.
func (airplane *Airplane) Capacity() int {
	return airplane.Rows * airplane.SeatsInRow
}
