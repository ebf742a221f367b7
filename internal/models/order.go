package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order rows are append-only: tickets may be added through the booking
// service, but an order is never edited or deleted once created.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderNumber string    `gorm:"type:varchar(8);unique;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	User        *User
	Tickets     []Ticket
	CreatedAt   time.Time
}

func (order *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return
}

// Ticket holds a single seat on a single flight. The composite unique index
// over (flight_id, row, seat) is what makes concurrent bookings of the same
// seat race safely: the database lets exactly one insert through.
type Ticket struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Row       int       `gorm:"not null;uniqueIndex:idx_tickets_flight_row_seat"`
	Seat      int       `gorm:"not null;uniqueIndex:idx_tickets_flight_row_seat"`
	FlightID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tickets_flight_row_seat"`
	Flight    *Flight   `gorm:"constraint:OnDelete:CASCADE"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Order     *Order    `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
