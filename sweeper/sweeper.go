// Package sweeper purges archived deliveries past the retention window.
package sweeper

import (
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"restaurant-api/logger"
	"restaurant-api/models"
)

var log = logger.New("sweeper")

// RetentionDays is how long archived deliveries are kept.
const RetentionDays = 7

// Schedule runs the sweep daily at 02:00.
const Schedule = "0 2 * * *"

// Start registers the daily sweep and returns the running scheduler.
func Start(db *gorm.DB) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc(Schedule, func() {
		if _, err := Sweep(db, time.Now()); err != nil {
			log.Error("retention sweep failed", logger.Err(err))
		}
	})
	if err != nil {
		// Static schedule expression; only a programming error gets here.
		panic(err)
	}
	c.Start()
	log.Info("retention sweep scheduled", logger.String("schedule", Schedule), logger.Int("retention_days", RetentionDays))
	return c
}

// Sweep deletes every archived delivery older than the retention window,
// from both the customer-facing and the rider-facing archives, and returns
// the number of records removed.
func Sweep(db *gorm.DB, now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -RetentionDays)

	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		aged := tx.Model(&models.FinishedDelivery{}).Select("id").Where("created_at < ?", cutoff)
		if err := tx.Where("finished_delivery_id IN (?)", aged).
			Delete(&models.FinishedDeliveryItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("created_at < ?", cutoff).Delete(&models.FinishedDelivery{})
		if res.Error != nil {
			return res.Error
		}
		deleted += res.RowsAffected

		riderAged := tx.Model(&models.RiderFinishedDelivery{}).Select("id").Where("created_at < ?", cutoff)
		if err := tx.Where("rider_finished_delivery_id IN (?)", riderAged).
			Delete(&models.RiderFinishedDeliveryItem{}).Error; err != nil {
			return err
		}
		res = tx.Where("created_at < ?", cutoff).Delete(&models.RiderFinishedDelivery{})
		if res.Error != nil {
			return res.Error
		}
		deleted += res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info("retention sweep finished", logger.Int64("deleted", deleted), logger.Time("cutoff", cutoff))
	return deleted, nil
}
