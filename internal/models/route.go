package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Route struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	SourceID      uuid.UUID `gorm:"type:uuid;not null"`
	Source        Airport   `gorm:"foreignKey:SourceID;constraint:OnDelete:CASCADE"`
	DestinationID uuid.UUID `gorm:"type:uuid;not null"`
	Destination   Airport   `gorm:"foreignKey:DestinationID;constraint:OnDelete:CASCADE"`
	Distance      float64   `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (route *Route) BeforeCreate(tx *gorm.DB) (err error) {
	if route.ID == uuid.Nil {
		route.ID = uuid.New()
	}
	return
}
