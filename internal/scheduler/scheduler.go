package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/jcb03/StargazingMCP/internal/locations"
	"github.com/jcb03/StargazingMCP/internal/weather"
)

// Scheduler periodically refreshes weather readings for the tracked cities
// so the store always has a warm snapshot to serve.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	cities    []string
	interval  time.Duration
}

// New creates a new Scheduler. cities are names from the static table;
// unknown entries are logged and skipped at job time.
func New(cities []string, interval time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		cities:    cities,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		log.Println("INFO: scheduler has no cities configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("INFO: scheduler running weather refresh job")

		var wg sync.WaitGroup
		for _, name := range s.cities {
			city, ok := locations.Find(name)
			if !ok {
				log.Printf("ERROR: scheduler skipping unknown city %q", name)
				continue
			}

			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if _, err := s.service.Refresh(ctx, city); err != nil {
					log.Printf("ERROR: scheduler refresh failed for %s: %v", city.Name, err)
				}
			}()
		}
		wg.Wait()
		log.Println("INFO: scheduler completed weather refresh job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
