package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leetwinoff/Airport-API-Service/internal/models"
)

// ErrForbidden is returned when a caller touches an order owned by
// someone else.
var ErrForbidden = errors.New("order belongs to another user")

// TicketRequest is one seat on one flight, as submitted by the caller.
type TicketRequest struct {
	FlightID uuid.UUID
	Row      int
	Seat     int
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

const orderNumberAttempts = 5

// CreateOrder books all requested seats under a single transaction. On any
// validation or uniqueness failure nothing is persisted and the error
// describes the first offending request.
func (s *Service) CreateOrder(ctx context.Context, userID uuid.UUID, requests []TicketRequest) (*models.Order, error) {
	var orderID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := createOrderRow(tx, userID)
		if err != nil {
			return err
		}
		if err := insertTickets(tx, order.ID, requests); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.loadOrder(ctx, orderID)
}

// AppendTickets adds seats to an existing order, transactionally. The order
// must belong to the calling user.
func (s *Service) AppendTickets(ctx context.Context, orderID, userID uuid.UUID, requests []TicketRequest) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "order", ID: orderID}
			}
			return err
		}
		if order.UserID != userID {
			return ErrForbidden
		}
		return insertTickets(tx, order.ID, requests)
	})
	if err != nil {
		return nil, err
	}
	return s.loadOrder(ctx, orderID)
}

// createOrderRow inserts the order, regenerating the order number on a
// uniqueness collision. Each attempt runs under a savepoint so a collision
// does not poison the surrounding transaction.
func createOrderRow(tx *gorm.DB, userID uuid.UUID) (*models.Order, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := GenerateOrderNumber()
		if err != nil {
			return nil, err
		}

		order := models.Order{OrderNumber: number, UserID: userID}
		if err := tx.SavePoint("order_insert").Error; err != nil {
			return nil, err
		}
		err = tx.Create(&order).Error
		if err == nil {
			return &order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		if err := tx.RollbackTo("order_insert").Error; err != nil {
			return nil, err
		}
	}
	return nil, ErrOrderNumberExhausted
}

func insertTickets(tx *gorm.DB, orderID uuid.UUID, requests []TicketRequest) error {
	for _, request := range requests {
		var flight models.Flight
		err := tx.Preload("Airplane").Where("id = ?", request.FlightID).First(&flight).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "flight", ID: request.FlightID}
			}
			return err
		}

		if err := ValidateSeat(request.Row, request.Seat, &flight.Airplane); err != nil {
			return err
		}

		ticket := models.Ticket{
			Row:      request.Row,
			Seat:     request.Seat,
			FlightID: flight.ID,
			OrderID:  orderID,
		}
		if err := tx.Create(&ticket).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &DuplicateSeatError{FlightID: flight.ID, Row: request.Row, Seat: request.Seat}
			}
			return err
		}
	}
	return nil
}

func (s *Service) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"row", seat`)
		}).
		Preload("Tickets.Flight").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
