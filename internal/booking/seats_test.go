package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leetwinoff/Airport-API-Service/internal/models"
)

func TestValidateSeat(t *testing.T) {
	airplane := &models.Airplane{Rows: 10, SeatsInRow: 6}

	tests := []struct {
		name      string
		row       int
		seat      int
		wantField string
	}{
		{name: "first seat", row: 1, seat: 1},
		{name: "last seat", row: 10, seat: 6},
		{name: "middle seat", row: 5, seat: 3},
		{name: "row zero", row: 0, seat: 1, wantField: "row"},
		{name: "row negative", row: -1, seat: 1, wantField: "row"},
		{name: "row too large", row: 11, seat: 1, wantField: "row"},
		{name: "seat zero", row: 1, seat: 0, wantField: "seat"},
		{name: "seat too large", row: 1, seat: 7, wantField: "seat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeat(tt.row, tt.seat, airplane)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestValidateSeatIsIdempotent(t *testing.T) {
	airplane := &models.Airplane{Rows: 3, SeatsInRow: 3}

	for i := 0; i < 3; i++ {
		assert.NoError(t, ValidateSeat(2, 2, airplane))
	}
}

func TestAvailableTicketsMatchesCapacityMinusSold(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	flight := createTestFlight(t, db, 10, 6)
	service := NewService(db)

	available, err := AvailableTickets(db, flight)
	require.NoError(t, err)
	assert.Equal(t, int64(60), available)

	_, err = service.CreateOrder(context.Background(), user.ID, []TicketRequest{
		{FlightID: flight.ID, Row: 1, Seat: 1},
		{FlightID: flight.ID, Row: 1, Seat: 2},
		{FlightID: flight.ID, Row: 2, Seat: 1},
	})
	require.NoError(t, err)

	// available + sold must always equal physical capacity
	available, err = AvailableTickets(db, flight)
	require.NoError(t, err)

	var sold int64
	require.NoError(t, db.Model(&models.Ticket{}).Where("flight_id = ?", flight.ID).Count(&sold).Error)
	assert.Equal(t, int64(flight.Airplane.Capacity()), available+sold)
	assert.Equal(t, int64(57), available)
}
