package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Flight struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	RouteID       uuid.UUID `gorm:"type:uuid;not null"`
	Route         Route     `gorm:"constraint:OnDelete:CASCADE"`
	AirplaneID    uuid.UUID `gorm:"type:uuid;not null"`
	Airplane      Airplane  `gorm:"constraint:OnDelete:CASCADE"`
	DepartureTime time.Time `gorm:"not null"`
	ArrivalTime   time.Time `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (flight *Flight) BeforeCreate(tx *gorm.DB) (err error) {
	if flight.ID == uuid.Nil {
		flight.ID = uuid.New()
	}
	return
}
