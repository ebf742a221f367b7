package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/leetwinoff/Airport-API-Service/internal/booking"
	"github.com/leetwinoff/Airport-API-Service/internal/helpers"
	"github.com/leetwinoff/Airport-API-Service/internal/models"
)

// CreateTicket books a single seat, creating an implicit one-ticket order
// for the caller.
func CreateTicket(c *gin.Context) {
	var req TicketRequestBody
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
	order, err := service.CreateOrder(c.Request.Context(), userID.(uuid.UUID), []booking.TicketRequest{
		{FlightID: req.FlightID, Row: req.Row, Seat: req.Seat},
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ticket booked successfully.",
		"ticket":  order.Tickets[0],
		"order":   gin.H{"id": order.ID, "order_number": order.OrderNumber},
	})
}

// ListTickets returns the caller's tickets; admins see all.
func ListTickets(c *gin.Context) {
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

	query := gormDB.Model(&models.Ticket{})
	if role, _ := c.Get("role"); role != models.RoleAdmin {
		query = query.
			Joins("JOIN orders ON orders.id = tickets.order_id").
			Where("orders.user_id = ?", userID)
	}

	var tickets []models.Ticket
	if err := query.Preload("Flight").Order(`"row", seat`).Find(&tickets).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving tickets.")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

func GetTicket(c *gin.Context) {
	ticket, ok := ticketForCaller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// TicketQR renders a signed boarding-pass QR code for the ticket owner.
func TicketQR(c *gin.Context) {
	ticket, ok := ticketForCaller(c)
	if !ok {
		return
	}

	qrImage, err := qrcode.Encode(ticketQRData(ticket), qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// ticketForCaller loads the ticket and enforces ownership. It writes the
// error response itself when returning ok=false.
func ticketForCaller(c *gin.Context) (*models.Ticket, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return nil, false
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, false
	}
	gormDB := db.(*gorm.DB)

	var ticket models.Ticket
	err := gormDB.Preload("Flight").Preload("Order").Where("id = ?", c.Param("id")).First(&ticket).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
			return nil, false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ticket.")
		return nil, false
	}

	role, _ := c.Get("role")
	if ticket.Order.UserID != userID && role != models.RoleAdmin {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view this ticket.")
		return nil, false
	}

	return &ticket, true
}

func ticketQRData(ticket *models.Ticket) string {
	signature := ticketSignature(ticket.ID, ticket.FlightID, ticket.OrderID)
	return fmt.Sprintf("ticket:%s;flight:%s;row:%d;seat:%d;signature:%s",
		ticket.ID, ticket.FlightID, ticket.Row, ticket.Seat, signature)
}

func ticketSignature(ticketID, flightID, orderID uuid.UUID) string {
	data := fmt.Sprintf("%s:%s:%s", ticketID, flightID, orderID)
	h := hmac.New(sha256.New, []byte(os.Getenv("JWT_SECRET")))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
