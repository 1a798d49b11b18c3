package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartStatusScheduler rolls study-session statuses forward once a
// minute (scheduled → ongoing → completed).
func (s *SessionService) StartStatusScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			if err := s.RollSessionStatuses(time.Now()); err != nil {
				log.Printf("[Scheduler] Session status roll failed: %v", err)
			}
		}),
	)
}

// StartReconcileScheduler re-derives the cached member and enrollment
// counters from child rows on a long interval. The hot path keeps them
// consistent transactionally; this catches out-of-band drift.
func (s *ProgressionService) StartReconcileScheduler(interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := s.ReconcileCounters(); err != nil {
				log.Printf("[Scheduler] Counter reconciliation failed: %v", err)
			} else {
				log.Println("[Scheduler] Counter reconciliation completed")
			}
		}),
	)
}
