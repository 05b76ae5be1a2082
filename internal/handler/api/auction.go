package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	reqdto "studiohub/internal/handler/dto/request"
	resdto "studiohub/internal/handler/dto/response"
	"studiohub/internal/handler/httperr"
	"studiohub/internal/handler/middleware"
	"studiohub/internal/usecase/commands"
	"studiohub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuctionHandler struct {
	auctionCommands commands.AuctionCommands
	auctionQueries  queries.AuctionQueries
}

func NewAuctionHandler(auctionCommands commands.AuctionCommands, auctionQueries queries.AuctionQueries) *AuctionHandler {
	return &AuctionHandler{
		auctionCommands: auctionCommands,
		auctionQueries:  auctionQueries,
	}
}

// @Summary Create listing
// @Description Open a beat listing for bids or collaboration requests
// @Tags auctions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateListingRequest true "Listing request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /listings [post]
func (h *AuctionHandler) CreateListing(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.auctionCommands.CreateListing(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrMissingBidPermission):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Listing creation not permitted for this account", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid listing data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Get listing
// @Tags auctions
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [get]
func (h *AuctionHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID format", nil)
		return
	}

	view, err := h.auctionQueries.GetListing(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrListingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

// @Summary List open listings
// @Tags auctions
// @Produce json
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.ListingResponse
// @Router /listings [get]
func (h *AuctionHandler) ListOpenListings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	views, err := h.auctionQueries.ListOpenListings(c.Request.Context(), limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingViews(views))
}

// @Summary List bids
// @Description Creator sees all bids by amount; others see only their own
// @Tags auctions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {array} resdto.BidResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id}/bids [get]
func (h *AuctionHandler) ListBids(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID format", nil)
		return
	}

	views, err := h.auctionQueries.ListBids(c.Request.Context(), userID, listingID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrListingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBidViews(views))
}

// @Summary Place bid
// @Description Bid on a listing; amounts must clear the floor and increment
// @Tags auctions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.PlaceBidRequest true "Bid request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /listings/{id}/bids [post]
func (h *AuctionHandler) PlaceBid(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID format", nil)
		return
	}

	var req reqdto.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.auctionCommands.PlaceBid(c.Request.Context(), userID, req.ToInput(listingID))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrListingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found", nil)
		case errors.Is(err, commands.ErrListingInactive):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Listing is not open for bids", nil)
		case errors.Is(err, commands.ErrSelfBid):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Cannot bid on your own listing", nil)
		case errors.Is(err, commands.ErrBidTooLow):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Bid is below the required amount", nil)
		case errors.Is(err, commands.ErrIncrementTooSmall):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Bid does not clear the minimum increment", nil)
		case errors.Is(err, commands.ErrDuplicatePendingBid):
			httperr.AbortWithError(c, http.StatusConflict, err, "A pending bid already exists on this listing", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid bid data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Accept bid
// @Description Creator accepts a pending bid and closes the listing
// @Tags auctions
// @Security BearerAuth
// @Param id path string true "Bid ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bids/{id}/accept [post]
func (h *AuctionHandler) AcceptBid(c *gin.Context) {
	h.resolveBid(c, h.auctionCommands.AcceptBid)
}

// @Summary Reject bid
// @Tags auctions
// @Security BearerAuth
// @Param id path string true "Bid ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bids/{id}/reject [post]
func (h *AuctionHandler) RejectBid(c *gin.Context) {
	h.resolveBid(c, h.auctionCommands.RejectBid)
}

func (h *AuctionHandler) resolveBid(c *gin.Context, op func(ctx context.Context, actorID, bidID uuid.UUID) error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	bidID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid bid ID format", nil)
		return
	}

	if err := op(c.Request.Context(), userID, bidID); err != nil {
		switch {
		case errors.Is(err, commands.ErrBidNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Bid not found", nil)
		case errors.Is(err, commands.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only the listing creator may resolve bids", nil)
		case errors.Is(err, commands.ErrBidNotPending):
			httperr.AbortWithError(c, http.StatusConflict, err, "Bid has already been resolved", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
