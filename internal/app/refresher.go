package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/haneulsoft/studio-scheduler/internal/cache"
)

// Refresher управляет фоновым обновлением кэша дневных расписаний
type Refresher struct {
	cache    *cache.DailyScheduleCache
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewRefresher создаёт новый обновлятор кэша
func NewRefresher(c *cache.DailyScheduleCache, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{
		cache:    c,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновое обновление
func (r *Refresher) Start(ctx context.Context) {
	r.logger.Info("Starting cache refresher",
		zap.Duration("interval", r.interval))

	go r.run(ctx)
}

// Stop останавливает фоновое обновление
func (r *Refresher) Stop() {
	r.logger.Info("Stopping cache refresher")
	close(r.stopChan)
}

// run периодически обновляет актуальные записи кэша, чтобы отметка
// посещения как можно реже упиралась в синхронную перезагрузку
func (r *Refresher) run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cache.Refresh(ctx)
			r.logger.Debug("Cache refresh completed",
				zap.Int("entries", r.cache.Len()))
		case <-r.stopChan:
			r.logger.Info("Cache refresh task stopped")
			return
		case <-ctx.Done():
			r.logger.Info("Cache refresh task cancelled")
			return
		}
	}
}
