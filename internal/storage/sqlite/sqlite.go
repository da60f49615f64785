// Package sqlite stores ledger records in a SQLite database through gorm.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ngthgila/Taxi/internal/record"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// row is the table layout of a record. Amounts are stored as text so no
// precision is lost to SQLite's REAL affinity.
type row struct {
	LedgerID    string          `gorm:"primaryKey;size:64"`
	ID          string          `gorm:"primaryKey;size:64"`
	Date        string          `gorm:"size:10;index;not null"`
	Revenue     decimal.Decimal `gorm:"type:text;not null"`
	Expense     decimal.Decimal `gorm:"type:text;not null"`
	ExpenseNote string          `gorm:"size:255"`
	GeneralNote string          `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (row) TableName() string {
	return "records"
}

func toRow(ledgerID string, r record.Record) row {
	return row{
		LedgerID:    ledgerID,
		ID:          r.ID,
		Date:        r.Date,
		Revenue:     r.Revenue,
		Expense:     r.Expense,
		ExpenseNote: r.ExpenseNote,
		GeneralNote: r.GeneralNote,
		CreatedAt:   r.CreatedAt,
	}
}

func (rw row) record() record.Record {
	return record.Record{
		ID:          rw.ID,
		Date:        rw.Date,
		Revenue:     rw.Revenue,
		Expense:     rw.Expense,
		ExpenseNote: rw.ExpenseNote,
		GeneralNote: rw.GeneralNote,
		CreatedAt:   rw.CreatedAt.UTC(),
	}
}

// Store implements record.Store on top of gorm.
type Store struct {
	db  *gorm.DB
	now func() time.Time
	mu  sync.Mutex
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string, verbose bool) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	gormLogger := logger.Default
	if !verbose {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")

	return New(db)
}

// New wraps an open gorm connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&row{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) List(ctx context.Context, ledgerID string) ([]record.Record, error) {
	var rows []row
	err := s.db.WithContext(ctx).
		Where("ledger_id = ?", ledgerID).
		Order("date desc, created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	records := make([]record.Record, len(rows))
	for i, rw := range rows {
		records[i] = rw.record()
	}
	return records, nil
}

func (s *Store) Get(ctx context.Context, ledgerID, id string) (record.Record, error) {
	rw, err := s.find(s.db.WithContext(ctx), ledgerID, id)
	if err != nil {
		return record.Record{}, err
	}
	return rw.record(), nil
}

func (s *Store) find(tx *gorm.DB, ledgerID, id string) (row, error) {
	var rw row
	err := tx.Where("ledger_id = ? AND id = ?", ledgerID, id).First(&rw).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row{}, fmt.Errorf("record '%s': %w", id, record.ErrNotFound)
	}
	if err != nil {
		return row{}, fmt.Errorf("get record: %w", err)
	}
	return rw, nil
}

func (s *Store) Save(ctx context.Context, ledgerID string, r record.Record) (record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var saved record.Record
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing record.Record
		found := false
		if r.ID != "" {
			rw, err := s.find(tx, ledgerID, r.ID)
			switch {
			case err == nil:
				existing, found = rw.record(), true
			case !errors.Is(err, record.ErrNotFound):
				return err
			}
		}

		prepared, err := record.Prepare(r, existing, found, s.now())
		if err != nil {
			return err
		}

		rw := toRow(ledgerID, prepared)
		if found {
			err = tx.Save(&rw).Error
		} else {
			err = tx.Create(&rw).Error
		}
		if err != nil {
			return fmt.Errorf("save record: %w", err)
		}
		saved = prepared
		return nil
	})
	if err != nil {
		return record.Record{}, err
	}
	return saved, nil
}

func (s *Store) Delete(ctx context.Context, ledgerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.db.WithContext(ctx).Where("ledger_id = ? AND id = ?", ledgerID, id).Delete(&row{})
	if res.Error != nil {
		return fmt.Errorf("delete record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("record '%s': %w", id, record.ErrNotFound)
	}
	return nil
}
