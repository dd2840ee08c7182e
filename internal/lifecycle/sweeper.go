package lifecycle

import (
	"context"
	"time"

	"auction-ledger/internal/repository"
	"auction-ledger/utils"
)

// Sweeper periodically finalizes auctions whose end date has passed. It is
// the in-process stand-in for an external scheduler: if it never runs,
// finalization is merely delayed until an on-demand or lazy trigger fires.
type Sweeper struct {
	repo      repository.AuctionDB
	finalizer *Finalizer
}

// NewSweeper creates a new Sweeper instance
func NewSweeper(repo repository.AuctionDB, finalizer *Finalizer) *Sweeper {
	return &Sweeper{repo: repo, finalizer: finalizer}
}

// Run blocks, sweeping at the given interval until the context is cancelled
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep finalizes every active auction past its end date. Failures are logged
// and retried on the next tick.
func (s *Sweeper) sweep() {
	ids, err := s.repo.ActiveAuctionsEndingBy(time.Now().UTC())
	if err != nil {
		utils.Error("sweeper: failed to list expiring auctions", map[string]any{"error": err.Error()})
		return
	}

	for _, id := range ids {
		result, err := s.finalizer.FinalizeIfExpired(id)
		if err != nil {
			utils.Error("sweeper: failed to finalize auction", map[string]any{
				"auction_id": id,
				"error":      err.Error(),
			})
			continue
		}
		if result.Finalized {
			utils.Info("sweeper: auction finalized", map[string]any{
				"auction_id":     id,
				"winning_bid_id": result.WinningBidID,
			})
		}
	}
}
