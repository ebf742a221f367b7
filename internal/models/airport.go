package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Airport struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Name           string    `gorm:"unique;not null"`
	Code           string    `gorm:"type:varchar(3);unique;not null"`
	ClosestBigCity string    `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (airport *Airport) BeforeCreate(tx *gorm.DB) (err error) {
	if airport.ID == uuid.Nil {
		airport.ID = uuid.New()
	}
	return
}
