package repositories

import (
	"errors"

	"marketsafe_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

type ListingRepository interface {
	Create(db *gorm.DB, listing *models.Listing) error
	FindByID(db *gorm.DB, id uint) (*models.Listing, error)
	FindAll(db *gorm.DB) ([]models.Listing, error)
	FindBySeller(db *gorm.DB, sellerID uint) ([]models.Listing, error)
	MarkSold(db *gorm.DB, id uint, soldToID uint) error
	AddComment(db *gorm.DB, comment *models.Comment) error
}

type listingRepository struct{}

func NewListingRepository() ListingRepository {
	return &listingRepository{}
}

func (r *listingRepository) Create(db *gorm.DB, listing *models.Listing) error {
	if err := db.Create(listing).Error; err != nil {
		return translateDBError(err, "listing.create")
	}
	return nil
}

func (r *listingRepository) FindByID(db *gorm.DB, id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := db.Preload("Comments").First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, translateDBError(err, "listing.find_by_id")
	}
	return &listing, nil
}

func (r *listingRepository) FindAll(db *gorm.DB) ([]models.Listing, error) {
	var listings []models.Listing
	if err := db.Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, translateDBError(err, "listing.find_all")
	}
	return listings, nil
}

func (r *listingRepository) FindBySeller(db *gorm.DB, sellerID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := db.Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, translateDBError(err, "listing.find_by_seller")
	}
	return listings, nil
}

// MarkSold sets is_sold and sold_to_id together so the pairing invariant
// holds in the row at all times.
func (r *listingRepository) MarkSold(db *gorm.DB, id uint, soldToID uint) error {
	result := db.Model(&models.Listing{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_sold":    true,
		"sold_to_id": soldToID,
	})
	if result.Error != nil {
		return translateDBError(result.Error, "listing.mark_sold")
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *listingRepository) AddComment(db *gorm.DB, comment *models.Comment) error {
	if err := db.Create(comment).Error; err != nil {
		return translateDBError(err, "listing.add_comment")
	}
	return nil
}
