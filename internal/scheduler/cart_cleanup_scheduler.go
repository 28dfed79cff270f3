package scheduler

import (
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/service"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CartCleanupScheduler sweeps expired guest cart rows on a cron schedule.
// The prune-on-read in the cart service catches active sessions; this sweep
// catches carts nobody ever comes back for.
type CartCleanupScheduler struct {
	cron        *cron.Cron
	cartService service.CartService
	schedule    string
}

func NewCartCleanupScheduler(cartService service.CartService, schedule string) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cron:        cron.New(),
		cartService: cartService,
		schedule:    schedule,
	}
}

func (s *CartCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		removed, err := s.cartService.PruneExpiredGuestItems()
		if err != nil {
			logger.Error("Scheduled cart cleanup failed", err)
			return
		}
		if removed > 0 {
			logger.Info("Scheduled cart cleanup removed expired items", map[string]interface{}{
				"removed": removed,
			})
		}
	})
	if err != nil {
		logger.Error("Failed to register cart cleanup job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

func (s *CartCleanupScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Cart cleanup scheduler stopped", nil)
}
