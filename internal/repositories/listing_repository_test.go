package repositories_test

import (
	"testing"

	"marketsafe_backend/internal/models"
	"marketsafe_backend/internal/repositories"
	"marketsafe_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingRepositoryCreateAndFind(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewListingRepository()
	seller := helpers.NewVerifiedAccount(t, db, "Password1")

	listing := &models.Listing{
		SellerID:    seller.ID,
		Title:       "Intro to Algorithms, 4th ed",
		Description: "Barely used",
		Price:       45.00,
		Location:    "Fort Garry campus",
	}
	require.NoError(t, repo.Create(db, listing))
	require.NotZero(t, listing.ID)

	found, err := repo.FindByID(db, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, found.SellerID)
	assert.False(t, found.IsSold)
	assert.Nil(t, found.SoldToID)

	_, err = repo.FindByID(db, 9999)
	assert.ErrorIs(t, err, repositories.ErrListingNotFound)
}

func TestListingRepositoryFindBySeller(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewListingRepository()
	seller := helpers.NewVerifiedAccount(t, db, "Password1")
	other := helpers.NewVerifiedAccount(t, db, "Password1")

	require.NoError(t, repo.Create(db, &models.Listing{SellerID: seller.ID, Title: "Desk", Price: 20, Location: "St. Vital"}))
	require.NoError(t, repo.Create(db, &models.Listing{SellerID: seller.ID, Title: "Lamp", Price: 10, Location: "St. Vital"}))
	require.NoError(t, repo.Create(db, &models.Listing{SellerID: other.ID, Title: "Chair", Price: 15, Location: "Downtown"}))

	mine, err := repo.FindBySeller(db, seller.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := repo.FindAll(db)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListingRepositoryMarkSold(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewListingRepository()
	seller := helpers.NewVerifiedAccount(t, db, "Password1")
	buyer := helpers.NewVerifiedAccount(t, db, "Password1")

	listing := &models.Listing{SellerID: seller.ID, Title: "Bike", Price: 80, Location: "Osborne"}
	require.NoError(t, repo.Create(db, listing))

	require.NoError(t, repo.MarkSold(db, listing.ID, buyer.ID))

	found, err := repo.FindByID(db, listing.ID)
	require.NoError(t, err)
	assert.True(t, found.IsSold)
	require.NotNil(t, found.SoldToID)
	assert.Equal(t, buyer.ID, *found.SoldToID)

	err = repo.MarkSold(db, 9999, buyer.ID)
	assert.ErrorIs(t, err, repositories.ErrListingNotFound)
}

func TestListingRepositoryComments(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewListingRepository()
	seller := helpers.NewVerifiedAccount(t, db, "Password1")
	commenter := helpers.NewVerifiedAccount(t, db, "Password1")

	listing := &models.Listing{SellerID: seller.ID, Title: "Textbook", Price: 30, Location: "Campus"}
	require.NoError(t, repo.Create(db, listing))

	require.NoError(t, repo.AddComment(db, &models.Comment{
		ListingID: listing.ID,
		AuthorID:  commenter.ID,
		Content:   "Is this still available?",
	}))

	found, err := repo.FindByID(db, listing.ID)
	require.NoError(t, err)
	require.Len(t, found.Comments, 1)
	assert.Equal(t, "Is this still available?", found.Comments[0].Content)
}
