package dto

// CreateListingRequest is the body of POST /listings. Field-level rules are
// enforced by the listing service so all failures can be reported together.
type CreateListingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	ImageURL    string  `json:"image_url"`
}

// AddCommentRequest is the body of POST /listings/:id/comments.
type AddCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// MarkSoldRequest is the body of POST /listings/:id/sold.
type MarkSoldRequest struct {
	BuyerID uint `json:"buyer_id" validate:"required"`
}
