package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// CoverReferences lists the cover references still used by books.
type CoverReferences interface {
	ListCoverRefs() ([]string, error)
}

// CoverStore is the part of covers.Store the cleanup job needs.
type CoverStore interface {
	Orphans(referenced []string) ([]string, error)
	Remove(ref string) error
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a 5-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// CoverCleanupScheduler periodically deletes cover files that no book
// references any more.
type CoverCleanupScheduler struct {
	refs     CoverReferences
	store    CoverStore
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	runMu      sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCoverCleanupScheduler creates a new scheduler instance
func NewCoverCleanupScheduler(refs CoverReferences, store CoverStore, schedule string) *CoverCleanupScheduler {
	return &CoverCleanupScheduler{
		refs:     refs,
		store:    store,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start registers the cleanup job and starts the cron loop. It stops again
// when ctx is cancelled.
func (s *CoverCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunNow(); err != nil {
			log.Printf("Cover cleanup: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Cover cleanup scheduler: started with schedule '%s'. Next run: %v",
		s.schedule, s.cron.Entry(entryID).Next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *CoverCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Cover cleanup scheduler: stopped")
}

// IsRunning returns whether the scheduler is active
func (s *CoverCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// RunNow removes orphaned covers immediately and returns how many were
// deleted. Concurrent runs are serialized.
func (s *CoverCleanupScheduler) RunNow() (int, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	startTime := time.Now()

	refs, err := s.refs.ListCoverRefs()
	if err != nil {
		return 0, fmt.Errorf("list cover references: %w", err)
	}

	orphans, err := s.store.Orphans(refs)
	if err != nil {
		return 0, fmt.Errorf("list stored covers: %w", err)
	}

	removed := 0
	for _, ref := range orphans {
		if err := s.store.Remove(ref); err != nil {
			log.Printf("Cover cleanup: failed to remove %s: %v", ref, err)
			continue
		}
		removed++
	}

	log.Printf("Cover cleanup: removed %d of %d orphaned covers in %v",
		removed, len(orphans), time.Since(startTime).Round(time.Millisecond))
	return removed, nil
}
