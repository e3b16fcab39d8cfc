package service

import (
	"context"
	"time"

	"frontdesk/config"

	"github.com/rs/zerolog/log"
)

// Refresher re-derives the occupancy board on a fixed interval so the cached
// display state is never staler than one polling period. There is no push
// channel; on-demand refreshes go through the service directly.
type Refresher struct {
	service  Occupancy
	interval time.Duration
}

func NewRefresher(service Occupancy, cfg *config.Config) *Refresher {
	interval := time.Duration(cfg.Occupancy.PollSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	return &Refresher{
		service:  service,
		interval: interval,
	}
}

// Run blocks until the context is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", r.interval).Msg("occupancy refresher started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("occupancy refresher stopped")

			return
		case <-ticker.C:
			if _, err := r.service.Refresh(ctx); err != nil {
				log.Error().Err(err).Msg("occupancy refresh pass failed, keeping last board")
			}
		}
	}
}
