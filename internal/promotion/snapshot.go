package promotion

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"cafe-site/internal/model"

	"github.com/rs/zerolog"
)

// Source loads the full promotion list from storage.
type Source interface {
	List(ctx context.Context) ([]model.Promotion, error)
}

// Snapshot keeps the current promotion list in memory so evaluation never
// touches storage. Readers get the list that was current when they asked;
// refreshes swap in a new list without blocking them.
type Snapshot struct {
	source    Source
	current   atomic.Pointer[snapshotState]
	notify    chan struct{}
	onRefresh func(size int)
	logger    zerolog.Logger
}

type snapshotState struct {
	promotions  []model.Promotion
	refreshedAt time.Time
}

// NewSnapshot creates an empty snapshot backed by source. Call Refresh before
// serving traffic.
func NewSnapshot(source Source, logger zerolog.Logger) *Snapshot {
	s := &Snapshot{
		source: source,
		notify: make(chan struct{}, 1),
		logger: logger.With().Str("component", "promotion-snapshot").Logger(),
	}
	s.current.Store(&snapshotState{})
	return s
}

// OnRefresh registers a callback invoked after every successful refresh with
// the new list size. It must be set before Run is started.
func (s *Snapshot) OnRefresh(fn func(size int)) {
	s.onRefresh = fn
}

// Promotions returns the current list. Callers must not modify it.
func (s *Snapshot) Promotions() []model.Promotion {
	return s.current.Load().promotions
}

// RefreshedAt returns when the current list was loaded.
func (s *Snapshot) RefreshedAt() time.Time {
	return s.current.Load().refreshedAt
}

// Refresh reloads the list from the source. On failure the previous list is
// kept.
func (s *Snapshot) Refresh(ctx context.Context) error {
	promotions, err := s.source.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to refresh promotion snapshot")
		return fmt.Errorf("failed to refresh promotions: %w", err)
	}

	s.current.Store(&snapshotState{
		promotions:  promotions,
		refreshedAt: time.Now(),
	})

	if s.onRefresh != nil {
		s.onRefresh(len(promotions))
	}

	s.logger.Debug().Int("count", len(promotions)).Msg("promotion snapshot refreshed")
	return nil
}

// Notify asks a running refresher to reload as soon as possible. It never
// blocks; notifications arriving while one is pending are coalesced.
func (s *Snapshot) Notify() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Run refreshes the snapshot every interval and whenever Notify is called,
// until ctx is cancelled.
func (s *Snapshot) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", interval).Msg("promotion snapshot refresher started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("promotion snapshot refresher stopped")
			return
		case <-ticker.C:
		case <-s.notify:
		}

		// Errors are logged by Refresh; the previous list stays in place.
		_ = s.Refresh(ctx)
	}
}
