package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/events"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const producerName = "mexitoes-api"

var taxRate = decimal.RequireFromString("0.08")

// OrderService turns carts into orders and serves order history
type OrderService interface {
	// Place converts the user's cart into an order and empties the cart
	Place(ctx context.Context, userID string) (*models.Order, error)
	// History lists the user's orders, newest first
	History(ctx context.Context, userID string) ([]models.Order, error)
	// Get returns an order owned by userID, with its lines
	Get(ctx context.Context, userID, orderID string) (*models.Order, error)
	// ListAll returns every order with its customer and lines
	ListAll(ctx context.Context) ([]models.Order, error)
	// SetStatus overrides the status of any order
	SetStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	db        *gorm.DB
	publisher events.Publisher
	now       func() time.Time
}

func NewOrderService(db *gorm.DB, publisher events.Publisher) OrderService {
	return &orderService{db: db, publisher: publisher, now: time.Now}
}

// Totals is the money breakdown of a cart
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums price x quantity and applies the 8% tax, rounding to cents
func ComputeTotals(rows []models.CartRow) Totals {
	subtotal := decimal.Zero
	for _, row := range rows {
		subtotal = subtotal.Add(decimal.NewFromFloat(row.Price).Mul(decimal.NewFromInt(int64(row.Quantity))))
	}
	rawTax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal: subtotal.Round(2),
		Tax:      rawTax.Round(2),
		Total:    subtotal.Add(rawTax).Round(2),
	}
}

func (s *orderService) Place(ctx context.Context, userID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := loadCart(tx, userID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrEmptyCart
		}

		totals := ComputeTotals(rows)
		placedAt := s.now().UTC()
		lines := make([]models.OrderLine, 0, len(rows))
		summary := make([]string, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, models.OrderLine{
				MenuItemID: row.MenuItemID,
				Name:       row.Name,
				Price:      row.Price,
				Quantity:   row.Quantity,
			})
			summary = append(summary, fmt.Sprintf("%dx %s", row.Quantity, row.Name))
		}

		order = models.Order{
			ID:           uuid.NewString(),
			UserID:       userID,
			Subtotal:     totals.Subtotal.InexactFloat64(),
			Tax:          totals.Tax.InexactFloat64(),
			Total:        totals.Total.InexactFloat64(),
			Status:       models.StatusPlaced,
			ItemsSummary: strings.Join(summary, ", "),
			NextStatusAt: models.StatusPlaced.NextDue(placedAt),
			CreatedAt:    placedAt,
			Items:        lines,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.Total,
	}).Info("Order placed")

	publish(ctx, s.publisher, events.EventOrderPlaced, order.ID, events.OrderPlacedPayload{
		OrderID:   order.ID,
		UserID:    userID,
		Total:     order.Total,
		ItemCount: len(order.Items),
		Summary:   order.ItemsSummary,
	}, s.now())

	return &order, nil
}

func (s *orderService) History(ctx context.Context, userID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) Get(ctx context.Context, userID, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}
		return nil, err
	}
	return &order, nil
}

func (s *orderService) ListAll(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) SetStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	db := s.db.WithContext(ctx)
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}
		return nil, err
	}

	from := order.Status
	due := status.NextDue(order.CreatedAt)
	updates := map[string]interface{}{"status": status, "next_status_at": nil}
	if due != nil {
		updates["next_status_at"] = *due
	}
	if err := db.Model(&order).Updates(updates).Error; err != nil {
		return nil, err
	}
	order.Status = status
	order.NextStatusAt = due

	log.WithFields(logrus.Fields{
		"order_id": orderID,
		"from":     from,
		"to":       status,
	}).Info("Order status overridden")

	publish(ctx, s.publisher, events.EventOrderStatusChanged, orderID, events.OrderStatusChangedPayload{
		OrderID: orderID,
		From:    string(from),
		To:      string(status),
		Source:  "admin",
	}, s.now())

	return &order, nil
}

// publish sends an event and logs failures. Events never fail the operation that produced them.
func publish(ctx context.Context, publisher events.Publisher, eventType, orderID string, payload any, at time.Time) {
	if publisher == nil {
		return
	}
	ev, err := events.NewEnvelope(producerName, eventType, orderID, payload, at)
	if err != nil {
		log.WithError(err).WithField("event_type", eventType).Error("Failed to build event")
		return
	}
	if err := publisher.Publish(ctx, ev); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"event_type": eventType,
			"order_id":   orderID,
		}).Error("Failed to publish event")
	}
}
