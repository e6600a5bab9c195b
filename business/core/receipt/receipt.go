// Package receipt maintains the local catalog of anchor receipts. Every
// successful anchoring transaction is recorded here so the dashboard and the
// admin tooling can show when a dataset digest was committed to the chain
// without asking the network again.
package receipt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a receipt lookup produces no rows.
var ErrNotFound = errors.New("receipt not found")

// Receipt represents one mined anchoring transaction for a dataset.
type Receipt struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Dataset     string    `gorm:"index" json:"dataset"`
	Digest      string    `json:"digest"`
	TxHash      string    `gorm:"uniqueIndex" json:"tx_hash"`
	BlockNumber uint64    `json:"block_number"`
	GasUsed     uint64    `json:"gas_used"`
	Status      string    `json:"status"`
	AnchoredAt  time.Time `json:"anchored_at"`
}

// TableName sets the table name for the receipt model.
func (Receipt) TableName() string {
	return "receipts"
}

// Config represents the database settings for the catalog.
type Config struct {
	Driver     string
	Connection string
}

// Store manages the set of APIs for receipt access.
type Store struct {
	db *gorm.DB
}

// NewStore opens the configured database, runs the schema migration and
// constructs a store for receipt access.
func NewStore(cfg Config, log *zap.SugaredLogger) (*Store, error) {
	dialector, err := createDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  newGormLogger(log),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s catalog: %w", cfg.Driver, err)
	}

	if err := db.AutoMigrate(&Receipt{}); err != nil {
		return nil, fmt.Errorf("migrating receipts table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the catalog connection. The debug readiness endpoint uses
// this to report whether the service can record new anchors.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Create inserts a new receipt into the catalog.
func (s *Store) Create(ctx context.Context, rcpt *Receipt) error {
	if err := s.db.WithContext(ctx).Create(rcpt).Error; err != nil {
		return fmt.Errorf("creating receipt: %w", err)
	}
	return nil
}

// ByDataset returns all receipts recorded for the dataset, newest first.
func (s *Store) ByDataset(ctx context.Context, dataset string) ([]Receipt, error) {
	var receipts []Receipt
	err := s.db.WithContext(ctx).
		Where("dataset = ?", dataset).
		Order("anchored_at DESC, id DESC").
		Find(&receipts).Error
	if err != nil {
		return nil, fmt.Errorf("querying receipts for %q: %w", dataset, err)
	}
	return receipts, nil
}

// Latest returns the most recent receipt recorded for the dataset.
func (s *Store) Latest(ctx context.Context, dataset string) (Receipt, error) {
	var rcpt Receipt
	err := s.db.WithContext(ctx).
		Where("dataset = ?", dataset).
		Order("anchored_at DESC, id DESC").
		First(&rcpt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Receipt{}, ErrNotFound
		}
		return Receipt{}, fmt.Errorf("querying latest receipt for %q: %w", dataset, err)
	}
	return rcpt, nil
}

// All returns every receipt in the catalog, newest first.
func (s *Store) All(ctx context.Context) ([]Receipt, error) {
	var receipts []Receipt
	err := s.db.WithContext(ctx).
		Order("anchored_at DESC, id DESC").
		Find(&receipts).Error
	if err != nil {
		return nil, fmt.Errorf("querying receipts: %w", err)
	}
	return receipts, nil
}
