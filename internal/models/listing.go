package models

// Listing is an item offered for sale by an account. SoldToID is set iff
// IsSold is true; the pairing is enforced by the service layer and mirrored
// here for reads.
type Listing struct {
	BaseModel
	SellerID    uint    `gorm:"not null;index" json:"seller_id"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"not null" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Location    string  `json:"location,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	IsSold      bool    `gorm:"default:false" json:"is_sold"`
	SoldToID    *uint   `json:"sold_to_id,omitempty"`

	Comments []Comment `gorm:"foreignKey:ListingID" json:"comments,omitempty"`
}

// Comment is a remark left on a listing by an account.
type Comment struct {
	BaseModel
	ListingID uint   `gorm:"not null;index" json:"listing_id"`
	AuthorID  uint   `gorm:"not null" json:"author_id"`
	Content   string `gorm:"not null" json:"content"`
}
