// Package scheduler runs periodic inventory snapshot exports.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Bayanda-Msibi/library-management-system/internal/config"
	"github.com/Bayanda-Msibi/library-management-system/internal/exporters"
)

// SnapshotScheduler writes timestamped CSV snapshots of the catalog on a
// cron schedule. Disabled by default; enable via SNAPSHOT_ENABLED.
type SnapshotScheduler struct {
	exporter *exporters.Service
	config   config.Snapshot

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewSnapshotScheduler creates a new scheduler instance.
func NewSnapshotScheduler(exporter *exporters.Service, cfg config.Snapshot) *SnapshotScheduler {
	return &SnapshotScheduler{
		exporter: exporter,
		config:   cfg,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if snapshots are enabled.
func (s *SnapshotScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Snapshot scheduler: disabled")
		return nil
	}

	if s.config.Dir == "" {
		log.Printf("Snapshot scheduler: snapshot directory not configured, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runSnapshot()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.config.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Snapshot scheduler: started with schedule %q", s.config.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running snapshot.
func (s *SnapshotScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Snapshot scheduler: stopped")
}

// RunNow triggers an immediate snapshot.
func (s *SnapshotScheduler) RunNow() {
	go s.runSnapshot()
}

// IsRunning returns whether the scheduler is active.
func (s *SnapshotScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next snapshot will be taken.
func (s *SnapshotScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runSnapshot writes one timestamped CSV file into the snapshot directory.
func (s *SnapshotScheduler) runSnapshot() {
	start := time.Now()

	if err := os.MkdirAll(s.config.Dir, 0o755); err != nil {
		log.Printf("Snapshot: failed to create directory %s: %v", s.config.Dir, err)
		return
	}

	path := filepath.Join(s.config.Dir, exporters.SnapshotFilename(start))
	f, err := os.Create(path)
	if err != nil {
		log.Printf("Snapshot: failed to create %s: %v", path, err)
		return
	}

	if err := s.exporter.ExportCSV(f); err != nil {
		_ = f.Close()
		log.Printf("Snapshot: export failed: %v", err)
		return
	}
	if err := f.Close(); err != nil {
		log.Printf("Snapshot: failed to close %s: %v", path, err)
		return
	}

	log.Printf("Snapshot: wrote %s in %v", path, time.Since(start).Round(time.Millisecond))
}
