package models

// Account is a registered user identity. Email is stored normalized
// (trimmed, lowercased) and unique; the password is stored only as a bcrypt
// hash.
type Account struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Fname        string `gorm:"not null" json:"fname"`
	Lname        string `gorm:"not null" json:"lname"`
	Verified     bool   `gorm:"default:false" json:"verified"`

	// Relations
	VerificationTokens []VerificationToken `gorm:"foreignKey:AccountID" json:"-"`
	Listings           []Listing           `gorm:"foreignKey:SellerID" json:"-"`
}
