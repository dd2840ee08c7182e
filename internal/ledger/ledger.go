package ledger

import (
	"errors"
	"fmt"
	"time"

	"auction-ledger/internal/auctionerrors"
	"auction-ledger/internal/events"
	"auction-ledger/internal/models"
	"auction-ledger/internal/repository"
	"auction-ledger/utils"
)

// maxCommitAttempts bounds the re-read loop when a commit loses a version race
const maxCommitAttempts = 3

// BidLedger owns every write that touches both stores: accepting a bid is a
// single atomic unit of new bid + demotion of the prior leader + auction
// aggregate update, serialized per auction by the repository's versioned
// commit.
type BidLedger struct {
	repo      repository.AuctionDB
	publisher events.Publisher
	now       func() time.Time
}

// NewBidLedger creates a new BidLedger instance
func NewBidLedger(repo repository.AuctionDB, publisher events.Publisher) *BidLedger {
	return &BidLedger{
		repo:      repo,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateAuctionInput carries the seller-provided listing fields
type CreateAuctionInput struct {
	Title        string
	Description  string
	Category     string
	SellerID     string
	Image        string
	InitialPrice float64
	StartDate    time.Time
	EndDate      time.Time
}

// CreateAuction validates the listing and stores it as an active auction with
// currentPrice = initialPrice and no bids.
func (l *BidLedger) CreateAuction(in CreateAuctionInput) (models.Auction, error) {
	if in.Title == "" || in.Category == "" || in.SellerID == "" {
		return models.Auction{}, fmt.Errorf("ledger: %w - missing title, category or sellerID", auctionerrors.ErrInvalidAuction)
	}
	if in.InitialPrice <= 0 {
		return models.Auction{}, fmt.Errorf("ledger: %w - initial price must be positive", auctionerrors.ErrInvalidAuction)
	}
	if !in.EndDate.After(in.StartDate) {
		return models.Auction{}, fmt.Errorf("ledger: %w - end date must be after start date", auctionerrors.ErrInvalidAuction)
	}

	now := l.now()
	auction := models.Auction{
		AuctionID:    utils.GenerateID(),
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		SellerID:     in.SellerID,
		Image:        in.Image,
		InitialPrice: in.InitialPrice,
		CurrentPrice: in.InitialPrice,
		Status:       models.AuctionActive,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}

	if err := l.repo.CreateAuction(auction); err != nil {
		return models.Auction{}, fmt.Errorf("ledger: failed to create auction by seller %s: %w", in.SellerID, err)
	}

	return auction, nil
}

// PlaceBid validates and atomically records a user's bid on an auction.
// The read-validate-commit sequence runs against a single auction snapshot;
// if another bid commits first the whole sequence is retried against fresh
// state, up to maxCommitAttempts, before the conflict is surfaced.
func (l *BidLedger) PlaceBid(auctionID, userID string, amount float64) (models.Bid, error) {
	if auctionID == "" || userID == "" {
		return models.Bid{}, fmt.Errorf("ledger: %w - missing auctionID or userID", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("ledger: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	var lastErr error
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		auction, err := l.repo.GetAuction(auctionID)
		if err != nil {
			return models.Bid{}, fmt.Errorf("ledger: failed to read auction %s: %w", auctionID, err)
		}

		if err := validateAgainstSnapshot(auction, userID, amount, l.now()); err != nil {
			return models.Bid{}, err
		}

		bid := models.Bid{
			BidID:     utils.GenerateID(),
			AuctionID: auctionID,
			UserID:    userID,
			Amount:    amount,
			IsWinning: true,
			Status:    models.BidActive,
			CreatedAt: l.now(),
		}

		err = l.repo.CommitBid(auction, bid)
		if errors.Is(err, auctionerrors.ErrConcurrentModification) {
			lastErr = err
			utils.Warn("ledger: bid commit raced, retrying against fresh snapshot", map[string]any{
				"auction_id": auctionID,
				"user_id":    userID,
				"attempt":    attempt,
			})
			continue
		}
		if err != nil {
			return models.Bid{}, fmt.Errorf("ledger: failed to commit bid on auction %s by user %s: %w", auctionID, userID, err)
		}

		l.recordSideEffects(bid)
		return bid, nil
	}

	return models.Bid{}, fmt.Errorf("ledger: bid on auction %s gave up after %d attempts: %w", auctionID, maxCommitAttempts, lastErr)
}

// validateAgainstSnapshot re-checks every precondition against one consistent
// read of the auction. Each failure maps to a distinct sentinel.
func validateAgainstSnapshot(auction models.Auction, userID string, amount float64, now time.Time) error {
	if !auction.AcceptingBidsAt(now) {
		return fmt.Errorf("ledger: %w - auction %s (status %s)", auctionerrors.ErrAuctionNotActive, auction.AuctionID, auction.Status)
	}
	if userID == auction.SellerID {
		return fmt.Errorf("ledger: %w - auction %s", auctionerrors.ErrSelfBidForbidden, auction.AuctionID)
	}
	if amount <= auction.CurrentPrice {
		return fmt.Errorf("ledger: %w - current price is %.2f", auctionerrors.ErrBidTooLow, auction.CurrentPrice)
	}
	return nil
}

// recordSideEffects updates the best-effort analytics counter and publishes
// the bid event. Neither participates in the atomic commit; failures are
// logged and swallowed.
func (l *BidLedger) recordSideEffects(bid models.Bid) {
	if err := l.repo.IncrementUserTotalBids(bid.UserID); err != nil {
		utils.Warn("ledger: failed to bump user bid counter", map[string]any{
			"user_id": bid.UserID,
			"error":   err.Error(),
		})
	}

	err := l.publisher.Publish(events.Event{
		Type:       events.TypeBidAccepted,
		AuctionID:  bid.AuctionID,
		BidID:      bid.BidID,
		UserID:     bid.UserID,
		Amount:     bid.Amount,
		OccurredAt: bid.CreatedAt,
	})
	if err != nil {
		utils.Warn("ledger: failed to publish bid event", map[string]any{
			"bid_id": bid.BidID,
			"error":  err.Error(),
		})
	}
}
