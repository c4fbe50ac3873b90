package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// KVEntry - строка таблицы kv_entries
type KVEntry struct {
	Key       string    `gorm:"column:kv_key;primaryKey;size:255"`
	Value     []byte    `gorm:"column:kv_value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// SQLiteKV - файловое хранилище через GORM + SQLite
type SQLiteKV struct {
	db *gorm.DB
}

var _ KVStore = (*SQLiteKV)(nil)

// OpenSQLiteKV открывает базу по пути (":memory:" тоже подходит) и мигрирует таблицу
func OpenSQLiteKV(path string) (*SQLiteKV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return NewSQLiteKV(db)
}

func NewSQLiteKV(db *gorm.DB) (*SQLiteKV, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}
	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var entry KVEntry
	if err := s.db.WithContext(ctx).First(&entry, "kv_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrorNotFound
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return entry.Value, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	entry := KVEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"kv_value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
