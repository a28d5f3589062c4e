package models

import (
	"time"
)

// BaseModel carries the identity and timestamps shared by every entity. The
// ID is assigned once by the database and never reassigned.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}
