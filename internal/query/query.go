package query

import (
	"fmt"

	"auction-ledger/internal/auctionerrors"
	"auction-ledger/internal/models"
	"auction-ledger/internal/repository"
)

// AuctionView is the read projection served to the API layer: the auction
// plus, on request, its bid history and highest bid.
type AuctionView struct {
	models.Auction
	Bids       []models.Bid `json:"bids,omitempty"`
	HighestBid *models.Bid  `json:"highest_bid,omitempty"`
}

// Service exposes read-only projections over committed state. It has no write
// authority; a bid is either fully visible with its auction updated, or not
// visible at all.
type Service struct {
	repo repository.AuctionDB
}

// NewService creates a new query Service instance
func NewService(repo repository.AuctionDB) *Service {
	return &Service{repo: repo}
}

// HighestBid returns the auction's current leading bid
func (s *Service) HighestBid(auctionID string) (models.Bid, error) {
	if auctionID == "" {
		return models.Bid{}, fmt.Errorf("query: %w - empty auction ID", auctionerrors.ErrInvalidAuction)
	}

	auction, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("query: failed to read auction %s: %w", auctionID, err)
	}
	if auction.CurrentBidID == "" {
		return models.Bid{}, fmt.Errorf("query: auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}

	bid, err := s.repo.GetBid(auction.CurrentBidID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("query: failed to read leading bid of auction %s: %w", auctionID, err)
	}
	return bid, nil
}

// BidHistory returns the auction's bids ordered by amount descending,
// truncated to limit when positive.
func (s *Service) BidHistory(auctionID string, limit int) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("query: %w - empty auction ID", auctionerrors.ErrInvalidAuction)
	}

	bids, err := s.repo.BidsByAuction(auctionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query: failed to get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// BidsForUser returns all bids a user has placed, newest first
func (s *Service) BidsForUser(userID string) ([]models.Bid, error) {
	if userID == "" {
		return nil, fmt.Errorf("query: %w - empty user ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.repo.BidsByUser(userID, 0)
	if err != nil {
		return nil, fmt.Errorf("query: failed to get bids for user %s: %w", userID, err)
	}
	return bids, nil
}

// AuctionWithBids returns the auction, optionally joined with its full bid
// history and highest bid.
func (s *Service) AuctionWithBids(auctionID string, withBids bool) (AuctionView, error) {
	if auctionID == "" {
		return AuctionView{}, fmt.Errorf("query: %w - empty auction ID", auctionerrors.ErrInvalidAuction)
	}

	auction, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return AuctionView{}, fmt.Errorf("query: failed to read auction %s: %w", auctionID, err)
	}

	view := AuctionView{Auction: auction}
	if !withBids {
		return view, nil
	}

	bids, err := s.repo.BidsByAuction(auctionID, 0)
	if err != nil {
		return AuctionView{}, fmt.Errorf("query: failed to get bids for auction %s: %w", auctionID, err)
	}
	view.Bids = bids
	if len(bids) > 0 {
		highest := bids[0]
		view.HighestBid = &highest
	}
	return view, nil
}
