package services

import (
	"strings"

	"marketsafe_backend/internal/managers"
	"marketsafe_backend/internal/models"
	"marketsafe_backend/internal/repositories"
	"marketsafe_backend/internal/services/dto"
	"marketsafe_backend/internal/validation"
	"marketsafe_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	maxTitleLength       = 120
	maxDescriptionLength = 2000
)

type ListingService interface {
	CreateListing(db *gorm.DB, sellerID uint, req *dto.CreateListingRequest) (*models.Listing, error)
	GetAllListings(db *gorm.DB) ([]models.Listing, error)
	GetListingsBySeller(db *gorm.DB, sellerID uint) ([]models.Listing, error)
	GetListingByID(db *gorm.DB, id uint) (*models.Listing, error)
	MarkSold(db *gorm.DB, listingID, sellerID, buyerID uint) (*models.Listing, error)
	AddComment(db *gorm.DB, listingID, authorID uint, content string) (*models.Comment, error)
}

type ListingServiceImpl struct {
	listingRepo    repositories.ListingRepository
	accountManager managers.AccountManager
}

func NewListingService(listingRepo repositories.ListingRepository, accountManager managers.AccountManager) ListingService {
	return &ListingServiceImpl{
		listingRepo:    listingRepo,
		accountManager: accountManager,
	}
}

// CreateListing validates every field and reports all failures at once as a
// single {field: [messages]} validation error, so the caller gets a complete
// report in one round trip.
func (s *ListingServiceImpl) CreateListing(db *gorm.DB, sellerID uint, req *dto.CreateListingRequest) (*models.Listing, error) {
	errs := fieldErrors{}

	title := s.validateText(req.Title, "title", maxTitleLength, errs)
	description := s.validateText(req.Description, "description", maxDescriptionLength, errs)

	price := req.Price
	if _, err := validation.IsPositiveNumber(req.Price, "price"); err != nil {
		errs.add("price", "price must be a positive number")
	}

	location := strings.TrimSpace(req.Location)
	if _, err := validation.RequireString(location, "location"); err != nil {
		errs.add("location", "location cannot be empty")
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL != "" {
		normalized, err := validation.ValidHTTPURL(imageURL, "image_url")
		if err != nil {
			errs.add("image_url", "image_url must be a valid http(s) URL with a host")
		} else {
			imageURL = normalized
		}
	}

	if len(errs) > 0 {
		return nil, apperrors.ValidationError(map[string]interface{}{"errors": errs})
	}

	if _, err := s.accountManager.RequireAccountByID(db, sellerID); err != nil {
		return nil, mapServiceError(err)
	}

	listing := &models.Listing{
		SellerID:    sellerID,
		Title:       title,
		Description: description,
		Price:       price,
		Location:    location,
		ImageURL:    imageURL,
	}

	if err := s.listingRepo.Create(db, listing); err != nil {
		return nil, mapServiceError(err)
	}
	return listing, nil
}

func (s *ListingServiceImpl) GetAllListings(db *gorm.DB) ([]models.Listing, error) {
	listings, err := s.listingRepo.FindAll(db)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return listings, nil
}

func (s *ListingServiceImpl) GetListingsBySeller(db *gorm.DB, sellerID uint) ([]models.Listing, error) {
	listings, err := s.listingRepo.FindBySeller(db, sellerID)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return listings, nil
}

func (s *ListingServiceImpl) GetListingByID(db *gorm.DB, id uint) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound("listing", "Listing not found")
		}
		return nil, mapServiceError(err)
	}
	return listing, nil
}

// MarkSold records a sale. Only the seller may mark their listing sold, a
// seller cannot buy their own listing, and a sold listing stays sold.
func (s *ListingServiceImpl) MarkSold(db *gorm.DB, listingID, sellerID, buyerID uint) (*models.Listing, error) {
	listing, err := s.GetListingByID(db, listingID)
	if err != nil {
		return nil, err
	}

	if listing.SellerID != sellerID {
		return nil, apperrors.ErrUnapprovedBehavior("listing", "Only the seller can mark a listing as sold")
	}
	if buyerID == listing.SellerID {
		return nil, apperrors.ErrUnapprovedBehavior("listing", "Seller cannot buy their own listing")
	}
	if listing.IsSold {
		return nil, apperrors.ErrConflict(nil, "listing", "Listing is already sold")
	}

	if _, err := s.accountManager.RequireAccountByID(db, buyerID); err != nil {
		return nil, mapServiceError(err)
	}

	if err := s.listingRepo.MarkSold(db, listingID, buyerID); err != nil {
		return nil, mapServiceError(err)
	}

	listing.IsSold = true
	listing.SoldToID = &buyerID
	return listing, nil
}

func (s *ListingServiceImpl) AddComment(db *gorm.DB, listingID, authorID uint, content string) (*models.Comment, error) {
	trimmed, err := validation.RequireString(content, "content")
	if err != nil {
		return nil, err
	}

	if _, err := s.GetListingByID(db, listingID); err != nil {
		return nil, err
	}
	if _, err := s.accountManager.RequireAccountByID(db, authorID); err != nil {
		return nil, mapServiceError(err)
	}

	comment := &models.Comment{
		ListingID: listingID,
		AuthorID:  authorID,
		Content:   trimmed,
	}
	if err := s.listingRepo.AddComment(db, comment); err != nil {
		return nil, mapServiceError(err)
	}
	return comment, nil
}

// fieldErrors accumulates validation messages per field.
type fieldErrors map[string][]string

func (e fieldErrors) add(field, message string) {
	e[field] = append(e[field], message)
}

func (s *ListingServiceImpl) validateText(value, field string, maxLen int, errs fieldErrors) string {
	trimmed, err := validation.RequireString(value, field)
	if err != nil {
		errs.add(field, field+" cannot be empty")
		return value
	}
	if _, err := validation.MaxLength(trimmed, maxLen, field); err != nil {
		errs.add(field, field+" is too long")
	}
	return trimmed
}
