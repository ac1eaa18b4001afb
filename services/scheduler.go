// services/scheduler.go
package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"

	"run-tracker/logger"
)

// StartIndexScheduler rebuilds the index every interval until the returned
// scheduler is shut down.
func (s *ArtifactService) StartIndexScheduler(interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.RebuildIndex(ctx); err != nil {
				logger.Error.Printf("[Scheduler] artifact index rebuild failed: %v", err)
				return
			}
			logger.Debug.Printf("[Scheduler] artifact index rebuilt")
		}),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}
	sched.Start()
	return sched, nil
}
