package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateRecord is the state_records table: one JSON document per state key.
type StateRecord struct {
	Key       string    `gorm:"primaryKey;size:50" json:"key"`
	Value     []byte    `gorm:"type:longtext" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StateRecord) TableName() string {
	return "state_records"
}

// GormStore persists each state key as a row in MySQL. Selected with
// STORAGE_DRIVER=mysql.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the state table and returns a store over db.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&StateRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate state table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Load implements Store.
func (s *GormStore) Load(key string, v any) error {
	var rec StateRecord
	err := s.db.Where("`key` = ?", key).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrKeyNotFound
		}
		return err
	}
	return json.Unmarshal(rec.Value, v)
}

// Save implements Store via an upsert on the key column.
func (s *GormStore) Save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	rec := StateRecord{Key: key, Value: raw}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}
