package migrate

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/medeu/storefront/pkg/logger"
)

// Migration is one versioned, reversible schema change. The ID starts with a
// sortable timestamp (20240311090000_create_roles) which defines apply order.
type Migration struct {
	ID   string
	Up   func(tx *gorm.DB) error
	Down func(tx *gorm.DB) error
}

// Record is one row of the bookkeeping table.
type Record struct {
	ID        string    `gorm:"primaryKey;column:id"`
	AppliedAt time.Time `gorm:"column:appliedAt;not null;autoCreateTime"`
}

func (Record) TableName() string { return "schema_migrations" }

// Status describes one catalog entry relative to the bookkeeping table.
type Status struct {
	ID        string
	Applied   bool
	AppliedAt time.Time
}

// Runner applies and reverts migrations against a single database. Each
// migration runs in its own transaction; a failure aborts the batch and the
// failed migration stays unrecorded.
type Runner struct {
	db         *gorm.DB
	migrations []*Migration
}

// NewRunner validates the catalog and returns a runner. Migrations are kept
// sorted by ID regardless of registration order.
func NewRunner(db *gorm.DB, migrations []*Migration) (*Runner, error) {
	sorted := make([]*Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	seen := make(map[string]bool, len(sorted))
	for _, m := range sorted {
		if m.ID == "" {
			return nil, fmt.Errorf("migration with empty id")
		}
		if m.Up == nil || m.Down == nil {
			return nil, fmt.Errorf("migration %s: up and down are both required", m.ID)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate migration id %s", m.ID)
		}
		seen[m.ID] = true
	}

	return &Runner{db: db, migrations: sorted}, nil
}

// Up applies every pending migration in ascending ID order and returns the
// number applied.
func (r *Runner) Up(ctx context.Context) (int, error) {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&Record{}); err != nil {
		return 0, fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	applied, err := r.appliedSet(db)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range r.migrations {
		if applied[m.ID] {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&Record{ID: m.ID}).Error
		})
		if err != nil {
			return count, fmt.Errorf("migration %s: %w", m.ID, err)
		}

		logger.Info(ctx).Str("migration", m.ID).Msg("Migration applied")
		count++
	}
	return count, nil
}

// Down reverts the last n applied migrations in reverse order. n <= 0 reverts
// only the most recent one.
func (r *Runner) Down(ctx context.Context, n int) (int, error) {
	if n <= 0 {
		n = 1
	}

	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&Record{}); err != nil {
		return 0, fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	applied, err := r.appliedSet(db)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := len(r.migrations) - 1; i >= 0 && count < n; i-- {
		m := r.migrations[i]
		if !applied[m.ID] {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&Record{ID: m.ID}).Error
		})
		if err != nil {
			return count, fmt.Errorf("revert migration %s: %w", m.ID, err)
		}

		logger.Info(ctx).Str("migration", m.ID).Msg("Migration reverted")
		count++
	}
	return count, nil
}

// Statuses reports every catalog entry with its applied state.
func (r *Runner) Statuses(ctx context.Context) ([]Status, error) {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	var records []Record
	if err := db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load schema_migrations: %w", err)
	}
	byID := make(map[string]Record, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	out := make([]Status, 0, len(r.migrations))
	for _, m := range r.migrations {
		s := Status{ID: m.ID}
		if rec, ok := byID[m.ID]; ok {
			s.Applied = true
			s.AppliedAt = rec.AppliedAt
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *Runner) appliedSet(db *gorm.DB) (map[string]bool, error) {
	var records []Record
	if err := db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load schema_migrations: %w", err)
	}
	applied := make(map[string]bool, len(records))
	for _, rec := range records {
		applied[rec.ID] = true
	}
	return applied, nil
}
