package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sustainsports/storefront-backend/pkg/config"
	"github.com/sustainsports/storefront-backend/pkg/migrate"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Entry is one persisted key-value document.
type Entry struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Entry) TableName() string { return "kv_entries" }

// SQLStore persists documents through a single kv_entries table.
type SQLStore struct {
	db *gorm.DB
}

// NewSQL opens the sqlite or postgres backend and applies migrations when
// auto-migrate is enabled.
func NewSQL(ctx context.Context, cfg config.StorageConfig) (*SQLStore, error) {
	var dialector gorm.Dialector
	var gooseDialect string
	switch cfg.Driver {
	case config.StorageDriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
		gooseDialect = "sqlite3"
	case config.StorageDriverPostgres:
		dialector = postgres.Open(cfg.DSN)
		gooseDialect = "postgres"
	default:
		return nil, fmt.Errorf("sql store does not support driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Driver, err)
	}

	if cfg.AutoMigrate {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("extracting sql.DB: %w", err)
		}
		if err := migrate.Up(ctx, sqlDB, gooseDialect); err != nil {
			return nil, err
		}
	}

	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string, dest any) error {
	var entry Entry
	if err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrKeyNotFound
		}
		return err
	}
	if err := json.Unmarshal([]byte(entry.Value), dest); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	entry := Entry{Key: key, Value: string(raw), UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
