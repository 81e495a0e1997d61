package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntryModel is the database schema for stored ledger entries.
type EntryModel struct {
	Key       string    `gorm:"primaryKey;type:varchar(100);column:entry_key"`
	Value     []byte    `gorm:"type:longblob;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (EntryModel) TableName() string {
	return "ledger_entries"
}

// MySQL is a Backend over a gorm-managed MySQL table holding one row per
// key.
type MySQL struct {
	db *gorm.DB
}

func NewMySQL(db *gorm.DB) (*MySQL, error) {
	if err := db.AutoMigrate(&EntryModel{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate schema: %w", err)
	}
	return &MySQL{db: db}, nil
}

func (m *MySQL) Get(ctx context.Context, key string) ([]byte, error) {
	var model EntryModel
	result := m.db.WithContext(ctx).First(&model, "entry_key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("database error: %w", result.Error)
	}
	return model.Value, nil
}

func (m *MySQL) Set(ctx context.Context, key string, value []byte) error {
	entry := EntryModel{
		Key:   key,
		Value: value,
	}

	result := m.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry)

	if result.Error != nil {
		return fmt.Errorf("database error: %w", result.Error)
	}
	return nil
}
