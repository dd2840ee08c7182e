package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"auction-ledger/internal/auctionerrors"
	model "auction-ledger/internal/models"
	"auction-ledger/internal/query"
	"auction-ledger/services/auction/helpers"
	"auction-ledger/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=bid_handler.go -destination=mock_bid_services.go -package=handler

type BidLedgerInterface interface {
	PlaceBid(auctionID, userID string, amount float64) (model.Bid, error)
}

type QueryInterface interface {
	HighestBid(auctionID string) (model.Bid, error)
	BidHistory(auctionID string, limit int) ([]model.Bid, error)
	BidsForUser(userID string) ([]model.Bid, error)
	AuctionWithBids(auctionID string, withBids bool) (query.AuctionView, error)
}

type BidHandler struct {
	ledger BidLedgerInterface
	query  QueryInterface
}

func NewBidHandler(ledger BidLedgerInterface, query QueryInterface) *BidHandler {
	return &BidHandler{ledger: ledger, query: query}
}

// PlaceBidHandler handles POST /bids
func (h *BidHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.ledger.PlaceBid(req.AuctionID, req.UserID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":    "PlaceBidHandler",
			"auction_id": req.AuctionID,
			"user_id":    req.UserID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": bid.AuctionID,
		"user_id":    req.UserID,
		"amount":     bid.Amount,
	})
}

// GetBidHistoryHandler handles GET /auctions/:auction_id/bids
func (h *BidHandler) GetBidHistoryHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	bids, err := h.query.BidHistory(auctionID, limit)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidHistoryHandler: error retrieving bids", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidHistoryHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(bids),
	})
}

// GetHighestBidHandler handles GET /auctions/:auction_id/winning
func (h *BidHandler) GetHighestBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bid, err := h.query.HighestBid(auctionID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no winning bid found")
			utils.Info("GetHighestBidHandler: no winning bid found", map[string]any{"auction_id": auctionID})
			return
		}
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetHighestBidHandler: winning bid error", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "winning bid retrieved successfully")
	helpers.LogSuccess("GetHighestBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": bid.AuctionID,
		"user_id":    bid.UserID,
		"amount":     bid.Amount,
	})
}

// GetBidsByUserHandler handles GET /users/:user_id/bids
func (h *BidHandler) GetBidsByUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	bids, err := h.query.BidsForUser(userID)
	if err != nil && !errors.Is(err, auctionerrors.ErrUserNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByUserHandler: error retrieving bids", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByUserHandler", "bids retrieved successfully", map[string]any{
		"user_id":    userID,
		"bids_count": len(bids),
	})
}
