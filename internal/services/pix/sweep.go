package pix

import (
	"context"
	"time"

	"mixbeat/internal/models"
	"mixbeat/internal/repositories"

	"github.com/rs/zerolog/log"
)

// SweepJob cancels pix payments that stayed pending past the horizon. The
// gateway stops accepting expired intents, so the entries only clutter the
// ledger and the webhook path can no longer complete them.
type SweepJob struct {
	repo      repositories.WalletRepository
	payments  Service
	interval  time.Duration
	horizon   time.Duration
	batchSize int
	stopCh    chan struct{}
}

func NewSweepJob(repo repositories.WalletRepository, payments Service, interval, horizon time.Duration) *SweepJob {
	if interval == 0 {
		interval = time.Minute
	}
	if horizon == 0 {
		horizon = 30 * time.Minute
	}
	return &SweepJob{
		repo:      repo,
		payments:  payments,
		interval:  interval,
		horizon:   horizon,
		batchSize: 100,
		stopCh:    make(chan struct{}),
	}
}

// Start runs the sweep loop until the context is cancelled or Stop is called.
func (j *SweepJob) Start(ctx context.Context) {
	log.Info().Dur("interval", j.interval).Dur("horizon", j.horizon).Msg("pix sweep job started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("pix sweep job stopping: context cancelled")
			return
		case <-j.stopCh:
			log.Info().Msg("pix sweep job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *SweepJob) Stop() {
	close(j.stopCh)
}

func (j *SweepJob) sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-j.horizon)
	stale, err := j.repo.ListPendingOlderThan(ctx, models.TransactionKindPixIn, cutoff, j.batchSize)
	if err != nil {
		log.Error().Err(err).Msg("pix sweep: failed to list stale payments")
		return
	}
	if len(stale) == 0 {
		return
	}

	cancelled := 0
	for _, tx := range stale {
		if err := j.payments.CancelPixPayment(ctx, tx.ExternalReference); err != nil {
			log.Error().Err(err).Str("gateway_id", tx.ExternalReference).Msg("pix sweep: cancel failed")
			continue
		}
		cancelled++
	}
	log.Info().Int("found", len(stale)).Int("cancelled", cancelled).Msg("pix sweep pass finished")
}
