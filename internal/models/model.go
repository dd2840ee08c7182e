package models

import "time"

// AuctionStatus is the closed set of auction lifecycle states
type AuctionStatus string

const (
	AuctionActive    AuctionStatus = "active"
	AuctionEnded     AuctionStatus = "ended"
	AuctionCancelled AuctionStatus = "cancelled"
	AuctionSold      AuctionStatus = "sold"
)

// Terminal reports whether the status has no outgoing transitions
func (s AuctionStatus) Terminal() bool {
	return s == AuctionEnded || s == AuctionCancelled || s == AuctionSold
}

// BidStatus is the closed set of bid states
type BidStatus string

const (
	BidActive    BidStatus = "active"
	BidOutbid    BidStatus = "outbid"
	BidWinning   BidStatus = "winning"
	BidCancelled BidStatus = "cancelled"
)

// Auction represents a timed sale listing.
// CurrentPrice, CurrentBidID, BidCount and Status are aggregate fields owned by
// the repository commit primitives; Version is the optimistic concurrency
// counter those primitives compare against and is never exposed over the API.
type Auction struct {
	AuctionID    string        `json:"auction_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     string        `json:"category"`
	SellerID     string        `json:"seller_id"`
	Image        string        `json:"image,omitempty"`
	InitialPrice float64       `json:"initial_price"`
	CurrentPrice float64       `json:"current_price"`
	Status       AuctionStatus `json:"status"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	CurrentBidID string        `json:"current_bid_id,omitempty"`
	BidCount     int           `json:"bid_count"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Version      uint64        `json:"-"`
}

// AcceptingBidsAt reports whether the auction can take bids at the given
// instant: status active and now inside [StartDate, EndDate).
func (a Auction) AcceptingBidsAt(now time.Time) bool {
	return a.Status == AuctionActive && !now.Before(a.StartDate) && now.Before(a.EndDate)
}

// ExpiredAt reports whether the auction's time window has elapsed
func (a Auction) ExpiredAt(now time.Time) bool {
	return !now.Before(a.EndDate)
}

// Bid represents a user's monetary offer on an auction. Immutable once
// accepted except for IsWinning and Status, which only the ledger (demotion)
// and the finalizer (promotion) may flip.
type Bid struct {
	BidID     string    `json:"bid_id"`
	AuctionID string    `json:"auction_id"`
	UserID    string    `json:"user_id"`
	Amount    float64   `json:"amount"`
	IsWinning bool      `json:"is_winning"`
	Status    BidStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStats carries the best-effort per-user analytics counters
type UserStats struct {
	UserID      string `json:"user_id"`
	TotalBids   int64  `json:"total_bids"`
	WonAuctions int64  `json:"won_auctions"`
}
