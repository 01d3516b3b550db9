package models

import "time"

// User represents an account that owns brands and perfume reviews.
type User struct {
	ID        string          `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Username  string          `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	Password  string          `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	Brands    []Brand         `json:"brands,omitempty" gorm:"foreignKey:OwnerID"`
	Reviews   []PerfumeReview `json:"reviews,omitempty" gorm:"foreignKey:OwnerID"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Identity is the minimal user information held in a session.
type Identity struct {
	Username string `json:"username"`
	UserID   string `json:"_id"`
}

// IdentityOf returns the session identity for u.
func IdentityOf(u *User) Identity {
	return Identity{Username: u.Username, UserID: u.ID}
}
