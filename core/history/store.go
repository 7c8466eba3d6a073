package history

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Run is one report generation run.
type Run struct {
	ID            string    `gorm:"column:id;primaryKey;size:36"`
	StartedAt     time.Time `gorm:"column:started_at"`
	FinishedAt    time.Time `gorm:"column:finished_at"`
	PilotRef      string    `gorm:"column:pilot_ref;size:512"`
	ProductionRef string    `gorm:"column:production_ref;size:512"`
	Connectors    int       `gorm:"column:connectors"`
	Failed        int       `gorm:"column:failed"`
	OutputPath    string    `gorm:"column:output_path;size:512"`
	Status        string    `gorm:"column:status;size:32"`
}

// TableName overrides the default table name.
func (Run) TableName() string {
	return "report_runs"
}

// Run status values.
const (
	StatusComplete = "complete"
	StatusPartial  = "partial" // one or more connectors failed
)

// Store persists runs.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store and ensures the report_runs table exists.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("migrate report_runs: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts a run.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []Run
	err := s.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
