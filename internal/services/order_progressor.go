package services

import (
	"context"
	"time"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/events"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const progressBatchSize = 100

// StatusProgressor moves orders along the delivery timeline. The schedule is
// the next_status_at column, so progress resumes after a restart.
type StatusProgressor struct {
	db        *gorm.DB
	publisher events.Publisher
	interval  time.Duration
	now       func() time.Time
}

func NewStatusProgressor(db *gorm.DB, publisher events.Publisher, interval time.Duration) *StatusProgressor {
	return &StatusProgressor{db: db, publisher: publisher, interval: interval, now: time.Now}
}

// Run polls until ctx is cancelled
func (p *StatusProgressor) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.WithField("interval", p.interval.String()).Info("Order status progressor started")
	for {
		select {
		case <-ctx.Done():
			log.Info("Order status progressor stopped")
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick advances every due order by one step and returns how many moved
func (p *StatusProgressor) Tick(ctx context.Context) int {
	now := p.now().UTC()
	db := p.db.WithContext(ctx)

	var due []models.Order
	err := db.Where("next_status_at IS NOT NULL AND next_status_at <= ?", now).
		Order("next_status_at ASC").
		Limit(progressBatchSize).
		Find(&due).Error
	if err != nil {
		log.WithError(err).Error("Failed to load due orders")
		return 0
	}

	advanced := 0
	for _, order := range due {
		next, ok := order.Status.Next()
		if !ok {
			// Terminal orders should not be scheduled
			err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("next_status_at", nil).Error
			if err != nil {
				log.WithError(err).WithField("order_id", order.ID).Error("Failed to unschedule terminal order")
			}
			continue
		}

		updates := map[string]interface{}{"status": next, "next_status_at": nil}
		if nextDue := next.NextDue(order.CreatedAt); nextDue != nil {
			updates["next_status_at"] = *nextDue
		}

		// Compare-and-set on the status this poll observed
		result := db.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(updates)
		if result.Error != nil {
			log.WithError(result.Error).WithField("order_id", order.ID).Error("Failed to advance order")
			continue
		}
		if result.RowsAffected == 0 {
			continue
		}

		advanced++
		log.WithFields(logrus.Fields{
			"order_id": order.ID,
			"from":     order.Status,
			"to":       next,
		}).Debug("Order advanced")

		publish(ctx, p.publisher, events.EventOrderStatusChanged, order.ID, events.OrderStatusChangedPayload{
			OrderID: order.ID,
			From:    string(order.Status),
			To:      string(next),
			Source:  "progressor",
		}, now)
	}
	return advanced
}
