// Package scheduler runs the periodic quote refresh.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Refresher is the portfolio operation the scheduler drives.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// Scheduler triggers a full portfolio refresh on a cron schedule, keeping
// quotes reasonably fresh without any client interaction.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a Scheduler with the given cron schedule expression
// (e.g. "@every 15m" or "0 */4 * * *").
func New(schedule string, refresher Refresher) (*Scheduler, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		runID := uuid.NewString()
		log.Printf("quote refresh run %s started", runID)
		if err := refresher.RefreshAll(context.Background()); err != nil {
			log.Printf("quote refresh run %s failed: %v", runID, err)
			return
		}
		log.Printf("quote refresh run %s completed", runID)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}

	return &Scheduler{cron: c}, nil
}

// Start begins running scheduled refreshes in a background goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling new refresh runs. A run already in progress is not
// interrupted.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
