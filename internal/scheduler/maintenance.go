// Package scheduler runs periodic SQLite maintenance: checkpointing the WAL
// so it doesn't grow without bound, and refreshing the query planner's
// statistics.
package scheduler

import (
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/booknest/booknest/internal/database"
)

// Maintenance checkpoints and optimizes the main database on a cron schedule.
type Maintenance struct {
	db       *database.Database
	schedule string

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewMaintenance creates a scheduler with a standard five-field cron
// schedule, e.g. "0 4 * * *" for daily at 04:00.
func NewMaintenance(db *database.Database, schedule string) *Maintenance {
	return &Maintenance{
		db:       db,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the schedule. No-op when already running.
func (m *Maintenance) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isRunning {
		return nil
	}

	_, err := m.cron.AddFunc(m.schedule, m.run)
	if err != nil {
		return err
	}
	m.cron.Start()
	m.isRunning = true
	log.Printf("Maintenance scheduler started (schedule: %s)", m.schedule)
	return nil
}

// Stop halts the schedule, waiting for a running job to finish.
func (m *Maintenance) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isRunning {
		return
	}
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.isRunning = false
	log.Println("Maintenance scheduler stopped")
}

func (m *Maintenance) run() {
	log.Println("Running database maintenance")
	if err := m.db.DB.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
		log.Printf("Maintenance: wal_checkpoint failed: %v", err)
	}
	if err := m.db.DB.Exec("PRAGMA optimize").Error; err != nil {
		log.Printf("Maintenance: optimize failed: %v", err)
	}
}
