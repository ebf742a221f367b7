package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leetwinoff/Airport-API-Service/internal/booking"
	"github.com/leetwinoff/Airport-API-Service/internal/helpers"
	"github.com/leetwinoff/Airport-API-Service/internal/models"
)

type FlightRequest struct {
	RouteID       uuid.UUID `json:"route_id" binding:"required"`
	AirplaneID    uuid.UUID `json:"airplane_id" binding:"required"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
}

// FlightListItem is one row of the flight listing with the remaining
// capacity folded in by the listing query.
type FlightListItem struct {
	ID               uuid.UUID
	RouteID          uuid.UUID
	AirplaneID       uuid.UUID
	DepartureTime    time.Time
	ArrivalTime      time.Time
	AvailableTickets int64
}

const availableTicketsExpr = "airplanes.rows * airplanes.seats_in_row - COUNT(tickets.id)"

// ListFlights filters by departure calendar day (UTC equality), arrival on
// or after a calendar day, and minimum available tickets. The availability
// is computed in one aggregate over the joined ticket counts, not per row.
// Malformed filter values are ignored.
func ListFlights(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB.Model(&models.Flight{}).
		Select("flights.id, flights.route_id, flights.airplane_id, flights.departure_time, flights.arrival_time, "+availableTicketsExpr+" AS available_tickets").
		Joins("JOIN airplanes ON airplanes.id = flights.airplane_id").
		Joins("LEFT JOIN tickets ON tickets.flight_id = flights.id").
		Group("flights.id, flights.route_id, flights.airplane_id, flights.departure_time, flights.arrival_time, airplanes.rows, airplanes.seats_in_row")

	if departure := c.Query("departure_date"); departure != "" {
		if day, err := time.ParseInLocation("2006-01-02", departure, time.UTC); err == nil {
			query = query.Where("flights.departure_time >= ? AND flights.departure_time < ?", day, day.AddDate(0, 0, 1))
		}
	}
	if arrival := c.Query("arrival_date"); arrival != "" {
		if day, err := time.ParseInLocation("2006-01-02", arrival, time.UTC); err == nil {
			query = query.Where("flights.arrival_time >= ?", day)
		}
	}
	if availableStr := c.Query("available_tickets"); availableStr != "" {
		if available, err := helpers.StringToInt(availableStr); err == nil {
			query = query.Having(availableTicketsExpr+" >= ?", available)
		}
	}

	var flights []FlightListItem
	if err := query.Order("flights.departure_time").Scan(&flights).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flights.")
		return
	}

	c.JSON(http.StatusOK, flights)
}

func GetFlight(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var flight models.Flight
	err := gormDB.
		Preload("Route.Source").
		Preload("Route.Destination").
		Preload("Airplane.AirplaneType").
		Preload("Airplane.Crew.Position").
		Where("id = ?", c.Param("id")).
		First(&flight).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Flight not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flight.")
		return
	}

	available, err := booking.AvailableTickets(gormDB, &flight)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"flight":            flight,
		"available_tickets": available,
	})
}

func CreateFlight(c *gin.Context) {
	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var route models.Route
	if err := gormDB.Where("id = ?", req.RouteID).First(&route).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Route not found.")
		return
	}
	var airplane models.Airplane
	if err := gormDB.Where("id = ?", req.AirplaneID).First(&airplane).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Airplane not found.")
		return
	}

	flight := models.Flight{
		RouteID:       route.ID,
		AirplaneID:    airplane.ID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}
	if err := gormDB.Create(&flight).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create flight.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Flight created successfully.",
		"flight_id": flight.ID,
	})
}

func UpdateFlight(c *gin.Context) {
	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var flight models.Flight
	if err := gormDB.Where("id = ?", c.Param("id")).First(&flight).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Flight not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flight.")
		return
	}

	var route models.Route
	if err := gormDB.Where("id = ?", req.RouteID).First(&route).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Route not found.")
		return
	}
	var airplane models.Airplane
	if err := gormDB.Where("id = ?", req.AirplaneID).First(&airplane).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Airplane not found.")
		return
	}

	flight.RouteID = route.ID
	flight.AirplaneID = airplane.ID
	flight.DepartureTime = req.DepartureTime
	flight.ArrivalTime = req.ArrivalTime
	if err := gormDB.Save(&flight).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update flight.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Flight updated successfully."})
}

func DeleteFlight(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Flight{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete flight.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Flight not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Flight deleted successfully."})
}
