package lifecycle

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

const maxCommitAttempts = 3

// Result reports the outcome of a finalization attempt
type Result struct {
	Finalized    bool                 `json:"finalized"`
	Status       models.AuctionStatus `json:"status"`
	WinningBidID string               `json:"winning_bid_id,omitempty"`
}

// Finalizer transitions auctions whose time window elapsed into their terminal
// state, locking in the final winner. It shares the repository's versioned
// commit with the ledger, so finalization can never interleave with an
// in-flight accepted bid on the same auction.
type Finalizer struct {
	repo      repository.AuctionDB
	publisher events.Publisher
	now       func() time.Time
}

// NewFinalizer creates a new Finalizer instance
func NewFinalizer(repo repository.AuctionDB, publisher events.Publisher) *Finalizer {
	return &Finalizer{
		repo:      repo,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// FinalizeIfExpired ends the auction if it is active and past its end date.
// Idempotent: a non-active auction is left unchanged. The status transition
// and the promotion of the leading bid to status winning commit as one unit.
func (f *Finalizer) FinalizeIfExpired(auctionID string) (Result, error) {
	if auctionID == "" {
		return Result{}, fmt.Errorf("lifecycle: %w - empty auction ID", auctionerrors.ErrInvalidAuction)
	}

	var lastErr error
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		auction, err := f.repo.GetAuction(auctionID)
		if err != nil {
			return Result{}, fmt.Errorf("lifecycle: failed to read auction %s: %w", auctionID, err)
		}

		if auction.Status != models.AuctionActive || !auction.ExpiredAt(f.now()) {
			return Result{Finalized: false, Status: auction.Status, WinningBidID: auction.CurrentBidID}, nil
		}

		err = f.repo.CommitStatus(auction, models.AuctionEnded)
		if errors.Is(err, auctionerrors.ErrConcurrentModification) {
			// a late bid squeezed in before the window check, re-read
			lastErr = err
			continue
		}
		if err != nil {
			return Result{}, fmt.Errorf("lifecycle: failed to finalize auction %s: %w", auctionID, err)
		}

		f.recordSideEffects(auction)
		return Result{Finalized: true, Status: models.AuctionEnded, WinningBidID: auction.CurrentBidID}, nil
	}

	return Result{}, fmt.Errorf("lifecycle: finalize auction %s gave up after %d attempts: %w", auctionID, maxCommitAttempts, lastErr)
}

// Cancel transitions an active auction to cancelled. Only permitted while no
// bid has been accepted; an auction with bids must run to its end date.
func (f *Finalizer) Cancel(auctionID string) error {
	if auctionID == "" {
		return fmt.Errorf("lifecycle: %w - empty auction ID", auctionerrors.ErrInvalidAuction)
	}

	var lastErr error
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		auction, err := f.repo.GetAuction(auctionID)
		if err != nil {
			return fmt.Errorf("lifecycle: failed to read auction %s: %w", auctionID, err)
		}

		if auction.Status != models.AuctionActive {
			return fmt.Errorf("lifecycle: %w - auction %s (status %s)", auctionerrors.ErrAuctionNotActive, auctionID, auction.Status)
		}
		if auction.BidCount > 0 {
			return fmt.Errorf("lifecycle: %w - auction %s has %d bids", auctionerrors.ErrCancelHasBids, auctionID, auction.BidCount)
		}

		err = f.repo.CommitStatus(auction, models.AuctionCancelled)
		if errors.Is(err, auctionerrors.ErrConcurrentModification) {
			lastErr = err
			continue
		}
		if err != nil {
			return fmt.Errorf("lifecycle: failed to cancel auction %s: %w", auctionID, err)
		}

		if pubErr := f.publisher.Publish(events.Event{
			Type:       events.TypeAuctionCancelled,
			AuctionID:  auctionID,
			OccurredAt: f.now(),
		}); pubErr != nil {
			utils.Warn("lifecycle: failed to publish cancel event", map[string]any{
				"auction_id": auctionID,
				"error":      pubErr.Error(),
			})
		}
		return nil
	}

	return fmt.Errorf("lifecycle: cancel auction %s gave up after %d attempts: %w", auctionID, maxCommitAttempts, lastErr)
}

// recordSideEffects publishes the ended event and bumps the winner's counter.
// Both are best-effort, outside the atomic commit.
func (f *Finalizer) recordSideEffects(snapshot models.Auction) {
	var winnerID string
	if snapshot.CurrentBidID != "" {
		if bid, err := f.repo.GetBid(snapshot.CurrentBidID); err == nil {
			winnerID = bid.UserID
			if cntErr := f.repo.IncrementUserWonAuctions(bid.UserID); cntErr != nil {
				utils.Warn("lifecycle: failed to bump won-auctions counter", map[string]any{
					"user_id": bid.UserID,
					"error":   cntErr.Error(),
				})
			}
		}
	}

	err := f.publisher.Publish(events.Event{
		Type:       events.TypeAuctionEnded,
		AuctionID:  snapshot.AuctionID,
		BidID:      snapshot.CurrentBidID,
		UserID:     winnerID,
		Amount:     snapshot.CurrentPrice,
		OccurredAt: f.now(),
	})
	if err != nil {
		utils.Warn("lifecycle: failed to publish ended event", map[string]any{
			"auction_id": snapshot.AuctionID,
			"error":      err.Error(),
		})
	}
}
