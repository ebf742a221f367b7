package booking

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/leetwinoff/Airport-API-Service/config"
	"github.com/leetwinoff/Airport-API-Service/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	config.SeedRoles(db)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	var role models.Role
	require.NoError(t, db.Where("name = ?", models.RoleUser).First(&role).Error)

	user := models.User{
		Email:    fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]),
		Password: "hashed",
		RoleID:   role.ID,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createTestFlight builds the whole catalog chain for one flight.
func createTestFlight(t *testing.T, db *gorm.DB, rows, seatsInRow int) *models.Flight {
	t.Helper()

	suffix := uuid.NewString()[:8]

	source := models.Airport{
		Name:           "Source " + suffix,
		Code:           randomAirportCode(t),
		ClosestBigCity: "City A",
	}
	require.NoError(t, db.Create(&source).Error)

	destination := models.Airport{
		Name:           "Destination " + suffix,
		Code:           randomAirportCode(t),
		ClosestBigCity: "City B",
	}
	require.NoError(t, db.Create(&destination).Error)

	route := models.Route{SourceID: source.ID, DestinationID: destination.ID, Distance: 100}
	require.NoError(t, db.Create(&route).Error)

	airplaneType := models.AirplaneType{
		Brand:             "TestBrand",
		Model:             "TestModel " + suffix,
		DefaultRows:       rows,
		DefaultSeatsInRow: seatsInRow,
	}
	require.NoError(t, db.Create(&airplaneType).Error)

	airplane := models.Airplane{
		Name:           "Airplane " + suffix,
		Rows:           rows,
		SeatsInRow:     seatsInRow,
		AirplaneTypeID: airplaneType.ID,
	}
	require.NoError(t, db.Create(&airplane).Error)

	flight := models.Flight{RouteID: route.ID, AirplaneID: airplane.ID}
	require.NoError(t, db.Create(&flight).Error)

	require.NoError(t, db.Preload("Airplane").First(&flight, "id = ?", flight.ID).Error)
	return &flight
}

var airportCodeSeq int

func randomAirportCode(t *testing.T) string {
	t.Helper()
	airportCodeSeq++
	n := airportCodeSeq
	return string([]byte{
		byte('A' + n/676%26),
		byte('A' + n/26%26),
		byte('A' + n%26),
	})
}
