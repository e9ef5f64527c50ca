package scheduler

import (
	"context"
	"log"
	"time"

	"pakora-chat-backend/internal/push/usecase"
)

// TokenSweepScheduler periodically runs the deduplicator over the whole
// token store so superseded registrations are pruned even when no chat
// events arrive.
type TokenSweepScheduler struct {
	pushUsecase usecase.PushUsecase
	interval    time.Duration
	stopChan    chan struct{}
}

// NewTokenSweepScheduler creates a new scheduler. An interval of 0 disables it.
func NewTokenSweepScheduler(pushUsecase usecase.PushUsecase, interval time.Duration) *TokenSweepScheduler {
	return &TokenSweepScheduler{
		pushUsecase: pushUsecase,
		interval:    interval,
		stopChan:    make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *TokenSweepScheduler) Start() {
	if s.interval <= 0 {
		log.Println("[Sweep] Token sweep disabled (no interval configured)")
		return
	}

	log.Printf("[Sweep] Starting token sweep scheduler (interval: %s)", s.interval)

	go func() {
		// Run immediately on start
		s.sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopChan:
				log.Println("[Sweep] Scheduler stopped")
				return
			}
		}
	}()
}

func (s *TokenSweepScheduler) sweep() {
	removed, err := s.pushUsecase.SweepTokens(context.Background())
	if err != nil {
		log.Printf("[Sweep] Token sweep failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("[Sweep] Removed %d superseded tokens", removed)
	}
}

// Stop gracefully stops the scheduler
func (s *TokenSweepScheduler) Stop() {
	close(s.stopChan)
}
