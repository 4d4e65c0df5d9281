package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/lamdn/attendbot/internal/common/clock"
)

// DefaultTickInterval is how often the scheduler re-evaluates its jobs.
// It is deliberately finer than the one-minute trigger granularity; the
// last-fired key keeps jobs from firing more than once per period.
const DefaultTickInterval = 15 * time.Second

// Job is a time-driven task. Trigger inspects the current time and
// returns the period key the job would fire for (e.g. "2025-06-02 12:00"
// or an ISO week) plus whether the time matches the job's schedule. Keys
// must be unique per period: the scheduler fires a job at most once per
// distinct key, no matter how many ticks land inside the matching minute.
type Job struct {
	// Name identifies the job in logs
	Name string

	// Trigger maps the current time to a period key and a fire decision
	Trigger func(now time.Time) (key string, fire bool)

	// Run performs the job
	Run func(ctx context.Context, now time.Time) error
}

type registeredJob struct {
	job          *Job
	lastFiredKey string
}

// Config holds configuration for the scheduler
type Config struct {
	// Clock supplies the current time
	Clock clock.Clock

	// TickInterval overrides the default polling interval
	TickInterval time.Duration
}

// Scheduler polls the clock and fires registered jobs at most once per
// matching period
type Scheduler struct {
	clock    clock.Clock
	interval time.Duration

	mu   sync.Mutex
	jobs []*registeredJob

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a new scheduler
func New(cfg *Config) (*Scheduler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	interval := cfg.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	return &Scheduler{
		clock:    cfg.Clock,
		interval: interval,
	}, nil
}

// Register adds a job. Jobs registered after Start are picked up on the
// next tick.
func (s *Scheduler) Register(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, &registeredJob{job: job})
}

// Start launches the tick loop. Stop cancels it; an in-flight tick is
// allowed to finish.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick(ctx, s.clock.Now())
			}
		}
	}()
}

// Stop cancels the tick loop and waits for it to drain
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}

	s.cancel()
	<-s.done
}

// tick evaluates every job against the current time. A job fires when
// its trigger matches and its period key differs from the one it last
// fired for; the key is recorded before the run so a failing run is not
// retried within the same period.
func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	s.mu.Lock()
	jobs := make([]*registeredJob, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	for _, rj := range jobs {
		key, fire := rj.job.Trigger(now)
		if !fire || key == rj.lastFiredKey {
			continue
		}

		rj.lastFiredKey = key

		if err := rj.job.Run(ctx, now); err != nil {
			log.Printf("scheduler: job %s failed for period %s: %v", rj.job.Name, key, err)
		}
	}
}
