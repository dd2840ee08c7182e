package helpers

import "time"

// Request/Response DTOs
type PlaceBidRequest struct {
	AuctionID string  `json:"auction_id" binding:"required"`
	UserID    string  `json:"user_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

type CreateAuctionRequest struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description"`
	Category     string    `json:"category" binding:"required"`
	SellerID     string    `json:"seller_id" binding:"required"`
	Image        string    `json:"image"`
	InitialPrice float64   `json:"initial_price" binding:"required,gt=0"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	AuctionID string  `json:"auction_id"`
	UserID    string  `json:"user_id"`
	Amount    float64 `json:"amount"`
	IsWinning bool    `json:"is_winning"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}
