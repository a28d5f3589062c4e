package services_test

import (
	"fmt"
	"strings"
	"testing"

	"marketsafe_backend/internal/managers"
	"marketsafe_backend/internal/models"
	"marketsafe_backend/internal/repositories"
	"marketsafe_backend/internal/services"
	"marketsafe_backend/internal/services/dto"
	"marketsafe_backend/pkg/apperrors"
	"marketsafe_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type listingServiceFixture struct {
	svc    services.ListingService
	db     *gorm.DB
	seller *models.Account
	buyer  *models.Account
}

func newListingServiceFixture(t *testing.T) *listingServiceFixture {
	t.Helper()
	db := helpers.NewTestDB(t)
	mgr := managers.NewAccountManager(repositories.NewAccountRepository())

	return &listingServiceFixture{
		svc:    services.NewListingService(repositories.NewListingRepository(), mgr),
		db:     db,
		seller: helpers.NewVerifiedAccount(t, db, "Password1"),
		buyer:  helpers.NewVerifiedAccount(t, db, "Password1"),
	}
}

func createListingRequest() *dto.CreateListingRequest {
	return &dto.CreateListingRequest{
		Title:       "Mini fridge",
		Description: "Works fine, moving out",
		Price:       40,
		Location:    "Pembina Hall",
		ImageURL:    "https://images.example.com/fridge.jpg",
	}
}

func TestCreateListingSuccess(t *testing.T) {
	f := newListingServiceFixture(t)

	listing, err := f.svc.CreateListing(f.db, f.seller.ID, createListingRequest())
	require.NoError(t, err)
	assert.NotZero(t, listing.ID)
	assert.Equal(t, f.seller.ID, listing.SellerID)
	assert.False(t, listing.IsSold)
}

func TestCreateListingImageURLOptional(t *testing.T) {
	f := newListingServiceFixture(t)

	req := createListingRequest()
	req.ImageURL = ""
	listing, err := f.svc.CreateListing(f.db, f.seller.ID, req)
	require.NoError(t, err)
	assert.Empty(t, listing.ImageURL)
}

func TestCreateListingRequiresLocation(t *testing.T) {
	f := newListingServiceFixture(t)

	for _, location := range []string{"", "   "} {
		req := createListingRequest()
		req.Location = location
		_, err := f.svc.CreateListing(f.db, f.seller.ID, req)
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationError, appErr.Code)
		assert.Contains(t, fmt.Sprint(appErr.Details), "location")
	}
}

func TestCreateListingCollectsAllFieldErrors(t *testing.T) {
	f := newListingServiceFixture(t)

	req := &dto.CreateListingRequest{
		Title:       "",
		Description: "",
		Price:       -3,
		ImageURL:    "ftp://not-http",
	}
	_, err := f.svc.CreateListing(f.db, f.seller.ID, req)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationError, appErr.Code)

	// Every failing field shows up in one report.
	rendered := fmt.Sprint(appErr.Details)
	for _, field := range []string{"title", "description", "price", "location", "image_url"} {
		assert.Contains(t, rendered, field)
	}
}

func TestCreateListingRejectsOverlongFields(t *testing.T) {
	f := newListingServiceFixture(t)

	req := createListingRequest()
	req.Title = strings.Repeat("x", 121)
	_, err := f.svc.CreateListing(f.db, f.seller.ID, req)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationError, appErr.Code)
}

func TestCreateListingUnknownSeller(t *testing.T) {
	f := newListingServiceFixture(t)

	_, err := f.svc.CreateListing(f.db, 9999, createListingRequest())
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAccountNotFound, appErr.Code)
}

func TestGetListingByID(t *testing.T) {
	f := newListingServiceFixture(t)

	created, err := f.svc.CreateListing(f.db, f.seller.ID, createListingRequest())
	require.NoError(t, err)

	found, err := f.svc.GetListingByID(f.db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, found.Title)

	_, err = f.svc.GetListingByID(f.db, 9999)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestMarkSoldRules(t *testing.T) {
	f := newListingServiceFixture(t)

	listing, err := f.svc.CreateListing(f.db, f.seller.ID, createListingRequest())
	require.NoError(t, err)

	t.Run("only the seller can mark sold", func(t *testing.T) {
		_, err := f.svc.MarkSold(f.db, listing.ID, f.buyer.ID, f.buyer.ID)
		require.Error(t, err)
		appErr, _ := apperrors.AsAppError(err)
		assert.Equal(t, apperrors.CodeUnapprovedBehavior, appErr.Code)
	})

	t.Run("seller cannot buy own listing", func(t *testing.T) {
		_, err := f.svc.MarkSold(f.db, listing.ID, f.seller.ID, f.seller.ID)
		require.Error(t, err)
		appErr, _ := apperrors.AsAppError(err)
		assert.Equal(t, apperrors.CodeUnapprovedBehavior, appErr.Code)
	})

	t.Run("success records the buyer", func(t *testing.T) {
		sold, err := f.svc.MarkSold(f.db, listing.ID, f.seller.ID, f.buyer.ID)
		require.NoError(t, err)
		assert.True(t, sold.IsSold)
		require.NotNil(t, sold.SoldToID)
		assert.Equal(t, f.buyer.ID, *sold.SoldToID)
	})

	t.Run("sold stays sold", func(t *testing.T) {
		_, err := f.svc.MarkSold(f.db, listing.ID, f.seller.ID, f.buyer.ID)
		require.Error(t, err)
		appErr, _ := apperrors.AsAppError(err)
		assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	})
}

func TestAddComment(t *testing.T) {
	f := newListingServiceFixture(t)

	listing, err := f.svc.CreateListing(f.db, f.seller.ID, createListingRequest())
	require.NoError(t, err)

	comment, err := f.svc.AddComment(f.db, listing.ID, f.buyer.ID, "  Still available? ")
	require.NoError(t, err)
	assert.Equal(t, "Still available?", comment.Content)
	assert.Equal(t, f.buyer.ID, comment.AuthorID)

	_, err = f.svc.AddComment(f.db, listing.ID, f.buyer.ID, "   ")
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidationError, appErr.Code)

	_, err = f.svc.AddComment(f.db, 9999, f.buyer.ID, "hello")
	require.Error(t, err)
	appErr, _ = apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
