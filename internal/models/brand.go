package models

import "time"

// Brand is a perfume house recorded by a user.
type Brand struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;index"`
	OwnerID   string    `json:"owner" gorm:"type:varchar(36);not null;index"`
	Owner     *User     `json:"ownerUser,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
