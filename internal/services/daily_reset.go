package services

import (
	"log"
	"time"

	"github.com/soumya813/SwaadGharKa/internal/repository"
)

// DailyResetJob zeroes every menu item's current-orders-today counter at
// local midnight. Without it the counters only ever grow and items go
// permanently "sold out".
type DailyResetJob struct {
	menuRepo repository.MenuRepository
	stop     chan struct{}
}

func NewDailyResetJob(menuRepo repository.MenuRepository) *DailyResetJob {
	return &DailyResetJob{
		menuRepo: menuRepo,
		stop:     make(chan struct{}),
	}
}

// Start runs the job loop in its own goroutine.
func (j *DailyResetJob) Start() {
	go j.run()
}

func (j *DailyResetJob) Stop() {
	close(j.stop)
}

func (j *DailyResetJob) run() {
	for {
		timer := time.NewTimer(untilNextMidnight(time.Now()))
		select {
		case <-timer.C:
			rows, err := j.menuRepo.ResetDailyCounters()
			if err != nil {
				log.Printf("Daily counter reset failed: %v", err)
				continue
			}
			log.Printf("Daily order counters reset for %d menu items", rows)
		case <-j.stop:
			timer.Stop()
			return
		}
	}
}

func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now)
}
