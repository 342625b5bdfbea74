package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"NewsSieve/internal/ports"
)

// DailyScheduler fires the job once immediately, then every day at the
// configured HH:MM wall-clock time in the given location.
type DailyScheduler struct {
	spec     string
	location *time.Location
	cron     *cron.Cron
	inflight sync.WaitGroup
}

var _ ports.Scheduler = (*DailyScheduler)(nil)

// NewDailyScheduler builds a scheduler from a 24h "HH:MM" string.
func NewDailyScheduler(at string, location *time.Location) (*DailyScheduler, error) {
	spec, err := cronSpec(at)
	if err != nil {
		return nil, err
	}
	if location == nil {
		location = time.UTC
	}
	return &DailyScheduler{spec: spec, location: location}, nil
}

// Start runs the job once right away and registers the daily trigger.
func (s *DailyScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if s.cron != nil {
		return nil
	}

	c := cron.New(cron.WithLocation(s.location))
	if _, err := c.AddFunc(s.spec, func() {
		if ctx.Err() != nil {
			return
		}
		job(time.Now().In(s.location))
	}); err != nil {
		return fmt.Errorf("register cron job: %w", err)
	}

	// The first run must not block Start; it is tracked so Stop can
	// bound the wait for it.
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if ctx.Err() == nil {
			job(time.Now().In(s.location))
		}
	}()

	s.cron = c
	c.Start()
	return nil
}

// Stop halts the cron runner and waits for in-flight jobs, but no longer
// than the given context allows.
func (s *DailyScheduler) Stop(ctx context.Context) error {
	if s.cron == nil {
		return nil
	}

	cronDone := s.cron.Stop().Done()
	s.cron = nil

	firstDone := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(firstDone)
	}()

	select {
	case <-cronDone:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-firstDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronSpec converts "HH:MM" into a standard five-field cron expression.
func cronSpec(at string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(at), ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("schedule time %q is not HH:MM", at)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("schedule hour %q out of range", parts[0])
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("schedule minute %q out of range", parts[1])
	}

	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
