package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leetwinoff/Airport-API-Service/internal/booking"
	"github.com/leetwinoff/Airport-API-Service/internal/helpers"
	"github.com/leetwinoff/Airport-API-Service/internal/models"
)

type TicketRequestBody struct {
	FlightID uuid.UUID `json:"flight_id" binding:"required"`
	Row      int       `json:"row" binding:"required"`
	Seat     int       `json:"seat" binding:"required"`
}

type OrderRequest struct {
	Tickets []TicketRequestBody `json:"tickets" binding:"required,min=1,dive"`
}

func toTicketRequests(bodies []TicketRequestBody) []booking.TicketRequest {
	requests := make([]booking.TicketRequest, 0, len(bodies))
	for _, body := range bodies {
		requests = append(requests, booking.TicketRequest{
			FlightID: body.FlightID,
			Row:      body.Row,
			Seat:     body.Seat,
		})
	}
	return requests
}

func respondBookingError(c *gin.Context, err error) {
	var validationErr *booking.ValidationError
	var duplicateErr *booking.DuplicateSeatError
	var notFoundErr *booking.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		helpers.RespondWithError(c, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &duplicateErr):
		helpers.RespondWithError(c, http.StatusConflict, duplicateErr.Error())
	case errors.As(err, &notFoundErr):
		helpers.RespondWithError(c, http.StatusNotFound, notFoundErr.Error())
	case errors.Is(err, booking.ErrForbidden):
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to modify this order.")
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to book tickets.")
	}
}

// CreateOrder books every requested seat in one transaction; a failure on
// any seat leaves nothing persisted.
func CreateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	service := booking.NewService(gormDB)
	order, err := service.CreateOrder(c.Request.Context(), userID.(uuid.UUID), toTicketRequests(req.Tickets))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully.",
		"order":   order,
	})
}

// AppendTickets adds seats to an existing order owned by the caller.
func AppendTickets(c *gin.Context) {
	orderID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid order ID.")
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	service := booking.NewService(gormDB)
	order, err := service.AppendTickets(c.Request.Context(), orderID, userID.(uuid.UUID), toTicketRequests(req.Tickets))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tickets added successfully.",
		"order":   order,
	})
}

// ListOrders returns the caller's orders, newest first. Admins see all.
func ListOrders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page, limit, err := helpers.Pagination(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters.")
		return
	}

	query := gormDB.Model(&models.Order{})
	if role, _ := c.Get("role"); role != models.RoleAdmin {
		query = query.Where("user_id = ?", userID)
	}

	var totalCount int64
	query.Count(&totalCount)

	var orders []models.Order
	err = query.
		Preload("Tickets", func(db *gorm.DB) *gorm.DB { return db.Order(`"row", seat`) }).
		Preload("Tickets.Flight").
		Offset((page - 1) * limit).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving orders.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":      orders,
		"total":       totalCount,
		"page":        page,
		"limit":       limit,
		"total_pages": (totalCount + int64(limit) - 1) / int64(limit),
	})
}

func GetOrder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var order models.Order
	err := gormDB.
		Preload("Tickets", func(db *gorm.DB) *gorm.DB { return db.Order(`"row", seat`) }).
		Preload("Tickets.Flight").
		Where("id = ?", c.Param("id")).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Order not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving order.")
		return
	}

	role, _ := c.Get("role")
	if order.UserID != userID && role != models.RoleAdmin {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view this order.")
		return
	}

	c.JSON(http.StatusOK, order)
}
