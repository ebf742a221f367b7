package booking

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/leetwinoff/Airport-API-Service/internal/models"
)

// ValidateSeat checks a 1-indexed (row, seat) against the airplane's grid.
// It is idempotent and runs before every ticket insert.
func ValidateSeat(row, seat int, airplane *models.Airplane) error {
	if row < 1 || row > airplane.Rows {
		return &ValidationError{
			Field:   "row",
			Message: fmt.Sprintf("row must be between 1 and %d, got %d", airplane.Rows, row),
		}
	}
	if seat < 1 || seat > airplane.SeatsInRow {
		return &ValidationError{
			Field:   "seat",
			Message: fmt.Sprintf("seat must be between 1 and %d, got %d", airplane.SeatsInRow, seat),
		}
	}
	return nil
}

// AvailableTickets recomputes the remaining capacity of a flight on every
// call. Nothing is cached, so the value can never go stale; two users
// racing for the last seat are resolved by the ticket uniqueness
// constraint, not by this number.
func AvailableTickets(db *gorm.DB, flight *models.Flight) (int64, error) {
	var sold int64
	if err := db.Model(&models.Ticket{}).Where("flight_id = ?", flight.ID).Count(&sold).Error; err != nil {
		return 0, err
	}
	return int64(flight.Airplane.Capacity()) - sold, nil
}
