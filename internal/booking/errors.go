// Package booking implements order creation with per-flight seat uniqueness.
// All multi-ticket operations are transactional: either every requested seat
// is booked or none are.
package booking

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrOrderNumberExhausted is returned when repeated attempts to generate a
// unique order number all collided with existing orders.
var ErrOrderNumberExhausted = errors.New("could not generate a unique order number")

// ValidationError reports a row or seat value outside the airplane's
// physical seat grid.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DuplicateSeatError means the requested seat is already sold on the flight.
type DuplicateSeatError struct {
	FlightID uuid.UUID
	Row      int
	Seat     int
}

func (e *DuplicateSeatError) Error() string {
	return fmt.Sprintf("seat %d in row %d is already taken on flight %s", e.Seat, e.Row, e.FlightID)
}

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
