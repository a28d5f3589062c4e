package workers

import (
	"context"
	"time"

	"marketsafe_backend/internal/logger"
	"marketsafe_backend/internal/models"

	"gorm.io/gorm"
)

// TokenWorker purges verification tokens that can never be redeemed again:
// used ones and ones past their expiry.
type TokenWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewTokenWorker(db *gorm.DB) *TokenWorker {
	return &TokenWorker{
		db:       db,
		interval: 1 * time.Hour,
	}
}

func (w *TokenWorker) Start(ctx context.Context) {
	go w.cleanupLoop(ctx)
}

func (w *TokenWorker) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token cleanup worker stopped")
			return
		case <-ticker.C:
			deleted, err := w.CleanupOnce()
			if err != nil {
				logger.WithError(err).Error("Token cleanup failed")
			} else if deleted > 0 {
				logger.Info("Purged stale verification tokens", "count", deleted)
			}
		}
	}
}

// CleanupOnce deletes used and expired tokens and reports how many rows went
// away.
func (w *TokenWorker) CleanupOnce() (int64, error) {
	result := w.db.
		Where("used = ? OR expires_at < ?", true, time.Now()).
		Delete(&models.VerificationToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
