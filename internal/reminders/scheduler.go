// Package reminders runs the daily watering-due scan: every morning it
// looks up plants whose next-watering date has arrived and logs a reminder
// for each.
package reminders

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/plantkeeper/plantkeeper-backend/internal/plants/domain"
)

// DueLister is the repository slice the scan needs; *repository.Repo
// satisfies it.
type DueLister interface {
	ListDue(ctx context.Context, date string) ([]domain.Plant, error)
}

type Scheduler struct {
	c    *cron.Cron
	repo DueLister
}

func NewScheduler(repo DueLister) *Scheduler {
	return &Scheduler{c: cron.New(), repo: repo}
}

// Start registers the daily scan (08:00 server time) and starts the cron
// loop.
func (s *Scheduler) Start() error {
	_, err := s.c.AddFunc("0 8 * * *", func() {
		if _, err := ScanDue(context.Background(), s.repo, time.Now()); err != nil {
			log.Printf("watering scan failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	log.Println("Watering reminder scheduler started (daily at 08:00)")
	s.c.Start()
	return nil
}

// Stop halts the cron loop and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}

// ScanDue lists every plant due on or before now's date and logs one
// reminder per plant. Returns the number of due plants.
func ScanDue(ctx context.Context, repo DueLister, now time.Time) (int, error) {
	today := now.Format(domain.DateLayout)

	due, err := repo.ListDue(ctx, today)
	if err != nil {
		return 0, err
	}

	for i := range due {
		p := &due[i]
		log.Printf("watering due: %q (%s) for %s, next watering %s", p.Name, p.Category, p.OwnerEmail, p.NextWatering)
	}

	return len(due), nil
}
