package models

import "time"

// PerfumeReview is a user's review of a single perfume from a Brand.
type PerfumeReview struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Notes     string    `json:"notes" gorm:"type:text;not null"`
	OwnerID   string    `json:"owner" gorm:"type:varchar(36);not null;index"`
	Owner     *User     `json:"ownerUser,omitempty"`
	BrandID   string    `json:"brandId" gorm:"type:varchar(36);not null;index"`
	Brand     *Brand    `json:"brand,omitempty"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}
