package repositories

import (
	"errors"
	"fmt"
	"time"

	"perfumery/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMSessionStorage persists session payloads in the sessions table. It
// satisfies fiber.Storage so it can back the fiber session middleware.
type GORMSessionStorage struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGORMSessionStorage creates a new instance of GORMSessionStorage.
func NewGORMSessionStorage(db *gorm.DB) *GORMSessionStorage {
	return &GORMSessionStorage{
		db:  db,
		now: time.Now,
	}
}

// Get returns the payload stored under key, or nil if the key is unknown or
// its session has expired. Expired rows are removed on read.
func (s *GORMSessionStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	var row models.Session
	if err := s.db.First(&row, "id = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if row.Expired(s.now()) {
		if err := s.Delete(key); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return row.Data, nil
}

// Set stores val under key. A zero exp keeps the session until deleted.
func (s *GORMSessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	row := models.Session{ID: key, Data: val}
	if exp > 0 {
		row.ExpiresAt = s.now().Add(exp)
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the session stored under key. Unknown keys are ignored.
func (s *GORMSessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	if err := s.db.Delete(&models.Session{}, "id = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Reset removes every stored session.
func (s *GORMSessionStorage) Reset() error {
	if err := s.db.Where("1 = 1").Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to reset sessions: %w", err)
	}
	return nil
}

// Close is a no-op; the database handle is owned by the caller.
func (s *GORMSessionStorage) Close() error {
	return nil
}
