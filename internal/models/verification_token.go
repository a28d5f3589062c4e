package models

import (
	"time"
)

// VerificationToken is a single-use, time-limited proof of control over an
// email address. Only the SHA-256 hash of the raw token is ever persisted;
// the raw token leaves the process exactly once, inside the emailed link.
type VerificationToken struct {
	BaseModel
	AccountID uint       `gorm:"not null;index" json:"account_id"`
	TokenHash string     `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	Used      bool       `gorm:"default:false" json:"used"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

func (VerificationToken) TableName() string {
	return "email_verification_tokens"
}

// IsExpired reports whether the token's validity window has passed.
func (t *VerificationToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IsValid reports whether the token is unused and unexpired.
func (t *VerificationToken) IsValid() bool {
	return !t.Used && !t.IsExpired()
}
