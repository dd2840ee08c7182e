package handler

import (
	"errors"
	"fmt"
	"net/http"

	"auction-ledger/internal/auctionerrors"
	"auction-ledger/internal/ledger"
	"auction-ledger/internal/lifecycle"
	model "auction-ledger/internal/models"
	"auction-ledger/services/auction/helpers"
	"auction-ledger/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_auction_services.go -package=handler

type AuctionLedgerInterface interface {
	CreateAuction(in ledger.CreateAuctionInput) (model.Auction, error)
}

type LifecycleInterface interface {
	FinalizeIfExpired(auctionID string) (lifecycle.Result, error)
	Cancel(auctionID string) error
}

type AuctionHandler struct {
	ledger    AuctionLedgerInterface
	lifecycle LifecycleInterface
	query     QueryInterface
}

func NewAuctionHandler(ledger AuctionLedgerInterface, lifecycle LifecycleInterface, query QueryInterface) *AuctionHandler {
	return &AuctionHandler{ledger: ledger, lifecycle: lifecycle, query: query}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	auction, err := h.ledger.CreateAuction(ledger.CreateAuctionInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		SellerID:     req.SellerID,
		Image:        req.Image,
		InitialPrice: req.InitialPrice,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"seller_id": req.SellerID,
			"error":     err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, auction, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": auction.AuctionID,
		"seller_id":  auction.SellerID,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id?with_bids=true.
// Finalization is triggered lazily so an auction viewed after its end date is
// already in its terminal state when served.
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	withBids := c.Query("with_bids") == "true"

	if _, err := h.lifecycle.FinalizeIfExpired(auctionID); err != nil {
		if errors.Is(err, auctionerrors.ErrAuctionNotFound) {
			utils.JSONError(c, http.StatusNotFound, err, "auction not found")
			return
		}
		// the read can still proceed, finalization will be retried later
		utils.Warn("GetAuctionHandler: lazy finalization failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
	}

	view, err := h.query.AuctionWithBids(auctionID, withBids)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, view, "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionHandler", "auction retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"with_bids":  withBids,
	})
}

// FinalizeAuctionHandler handles POST /auctions/:auction_id/finalize
func (h *AuctionHandler) FinalizeAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	result, err := h.lifecycle.FinalizeIfExpired(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("FinalizeAuctionHandler: failed to finalize auction", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, result, "finalization processed")
	helpers.LogSuccess("FinalizeAuctionHandler", "finalization processed", map[string]any{
		"auction_id":     auctionID,
		"finalized":      result.Finalized,
		"winning_bid_id": result.WinningBidID,
	})
}

// CancelAuctionHandler handles POST /auctions/:auction_id/cancel
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	if err := h.lifecycle.Cancel(auctionID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CancelAuctionHandler: failed to cancel auction", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"auction_id": auctionID, "status": model.AuctionCancelled}, "auction cancelled successfully")
	helpers.LogSuccess("CancelAuctionHandler", "auction cancelled successfully", map[string]any{
		"auction_id": auctionID,
	})
}
