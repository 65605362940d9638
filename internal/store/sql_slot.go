package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// slotRow maps one storage slot to one row; the document travels as an opaque
// JSON string, read and written wholesale like every other slot driver.
type slotRow struct {
	Name      string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

func (slotRow) TableName() string { return "storage_slots" }

type sqlSlot struct {
	db   *gorm.DB
	name string
}

// NewSQLSlot stores the document in a single-row table via GORM (sqlite or
// postgres, depending on how db was opened).
func NewSQLSlot(db *gorm.DB, name string) (Slot, error) {
	if err := db.AutoMigrate(&slotRow{}); err != nil {
		return nil, err
	}
	return &sqlSlot{db: db, name: name}, nil
}

func (s *sqlSlot) Read(ctx context.Context) ([]byte, bool, error) {
	var row slotRow
	err := s.db.WithContext(ctx).First(&row, "name = ?", s.name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(row.Value), true, nil
}

func (s *sqlSlot) Write(ctx context.Context, data []byte) error {
	return s.db.WithContext(ctx).Save(&slotRow{Name: s.name, Value: string(data), UpdatedAt: time.Now()}).Error
}

func (s *sqlSlot) Delete(ctx context.Context) error {
	return s.db.WithContext(ctx).Delete(&slotRow{}, "name = ?", s.name).Error
}
