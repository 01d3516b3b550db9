package models

import "time"

// Session is a persisted server-side session record. Data holds the encoded
// session payload produced by the session middleware.
type Session struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)"`
	Data      []byte    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index"` // zero means no expiry
}

// Expired reports whether the session has an expiry that lies before now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}
