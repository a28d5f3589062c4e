package handlers

import (
	"net/http"

	"marketsafe_backend/internal/services"
	"marketsafe_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	*BaseHandler
	listingService services.ListingService
}

func NewListingHandler(base *BaseHandler, listingService services.ListingService) *ListingHandler {
	return &ListingHandler{
		BaseHandler:    base,
		listingService: listingService,
	}
}

// RegisterRoutes wires the listing endpoints under /api/v1.
func (h *ListingHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	listings := rg.Group("/listings")
	{
		listings.GET("", h.GetAllListings)
		listings.GET("/:id", h.GetListing)
	}

	protected := rg.Group("/listings")
	protected.Use(authRequired)
	{
		protected.POST("", h.CreateListing)
		protected.GET("/me", h.GetMyListings)
		protected.POST("/:id/sold", h.MarkSold)
		protected.POST("/:id/comments", h.AddComment)
	}
}

// CreateListing handles POST /listings.
func (h *ListingHandler) CreateListing(c *gin.Context) {
	sellerID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	listing, err := h.listingService.CreateListing(db, sellerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// GetAllListings handles GET /listings.
func (h *ListingHandler) GetAllListings(c *gin.Context) {
	db := h.GetDB(c)

	listings, err := h.listingService.GetAllListings(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// GetMyListings handles GET /listings/me.
func (h *ListingHandler) GetMyListings(c *gin.Context) {
	sellerID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	listings, err := h.listingService.GetListingsBySeller(db, sellerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// GetListing handles GET /listings/:id.
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	listing, err := h.listingService.GetListingByID(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// MarkSold handles POST /listings/:id/sold.
func (h *ListingHandler) MarkSold(c *gin.Context) {
	sellerID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.MarkSoldRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	listing, err := h.listingService.MarkSold(db, id, sellerID, req.BuyerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// AddComment handles POST /listings/:id/comments.
func (h *ListingHandler) AddComment(c *gin.Context) {
	authorID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.AddCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	comment, err := h.listingService.AddComment(db, id, authorID, req.Content)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
