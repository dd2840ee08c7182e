package lifecycle

import (
	"fmt"
	"testing"
	"time"

	"auction-ledger/internal/auctionerrors"
	"auction-ledger/internal/events"
	model "auction-ledger/internal/models"
	"auction-ledger/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func seedAuction(t *testing.T, repo *repository.MemoryRepo, auctionID string, endDate time.Time) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, repo.CreateAuction(model.Auction{
		AuctionID:    auctionID,
		Title:        "test listing",
		Category:     "misc",
		SellerID:     "seller1",
		InitialPrice: 100,
		CurrentPrice: 100,
		Status:       model.AuctionActive,
		StartDate:    now.Add(-time.Hour),
		EndDate:      endDate,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}))
}

func seedBid(t *testing.T, repo *repository.MemoryRepo, bidID, auctionID, userID string, amount float64) {
	t.Helper()
	snapshot, err := repo.GetAuction(auctionID)
	require.NoError(t, err)
	require.NoError(t, repo.CommitBid(snapshot, model.Bid{
		BidID:     bidID,
		AuctionID: auctionID,
		UserID:    userID,
		Amount:    amount,
		IsWinning: true,
		Status:    model.BidActive,
		CreatedAt: time.Now().UTC(),
	}))
}

func TestFinalizer_FinalizeIfExpired(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("empty_auction_id", func(t *testing.T) {
		t.Parallel()

		f := NewFinalizer(repository.NewMemoryRepo(), events.NoopPublisher{})
		_, err := f.FinalizeIfExpired("")
		require.ErrorIs(t, err, auctionerrors.ErrInvalidAuction)
	})

	t.Run("unknown_auction", func(t *testing.T) {
		t.Parallel()

		f := NewFinalizer(repository.NewMemoryRepo(), events.NoopPublisher{})
		_, err := f.FinalizeIfExpired("ghost")
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})

	t.Run("not_yet_expired_is_a_noop", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewMemoryRepo()
		seedAuction(t, repo, "auction1", now.Add(time.Hour))

		f := NewFinalizer(repo, events.NoopPublisher{})
		result, err := f.FinalizeIfExpired("auction1")

		require.NoError(t, err)
		require.False(t, result.Finalized)
		require.Equal(t, model.AuctionActive, result.Status)

		auction, err := repo.GetAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, model.AuctionActive, auction.Status)
	})

	t.Run("expired_with_bids_promotes_leader", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewMemoryRepo()
		seedAuction(t, repo, "auction1", now.Add(time.Hour))
		seedBid(t, repo, "bid1", "auction1", "user1", 150)
		seedBid(t, repo, "bid2", "auction1", "user2", 200)

		f := NewFinalizer(repo, events.NoopPublisher{})
		f.now = func() time.Time { return now.Add(2 * time.Hour) }

		result, err := f.FinalizeIfExpired("auction1")
		require.NoError(t, err)
		require.True(t, result.Finalized)
		require.Equal(t, model.AuctionEnded, result.Status)
		require.Equal(t, "bid2", result.WinningBidID)

		winner, err := repo.GetBid("bid2")
		require.NoError(t, err)
		require.True(t, winner.IsWinning)
		require.Equal(t, model.BidWinning, winner.Status)

		loser, err := repo.GetBid("bid1")
		require.NoError(t, err)
		require.Equal(t, model.BidOutbid, loser.Status)

		// winner's counter was bumped
		stats, err := repo.UserStats("user2")
		require.NoError(t, err)
		require.Equal(t, int64(1), stats.WonAuctions)
	})

	t.Run("second_call_is_idempotent", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewMemoryRepo()
		seedAuction(t, repo, "auction1", now.Add(time.Hour))
		seedBid(t, repo, "bid1", "auction1", "user1", 150)

		f := NewFinalizer(repo, events.NoopPublisher{})
		f.now = func() time.Time { return now.Add(2 * time.Hour) }

		first, err := f.FinalizeIfExpired("auction1")
		require.NoError(t, err)
		require.True(t, first.Finalized)

		second, err := f.FinalizeIfExpired("auction1")
		require.NoError(t, err)
		require.False(t, second.Finalized)
		require.Equal(t, model.AuctionEnded, second.Status)
		require.Equal(t, "bid1", second.WinningBidID)

		// the counter is only bumped by the transition itself
		stats, err := repo.UserStats("user1")
		require.NoError(t, err)
		require.Equal(t, int64(1), stats.WonAuctions)
	})

	t.Run("expired_without_bids_has_no_winner", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewMemoryRepo()
		seedAuction(t, repo, "auction1", now.Add(time.Hour))

		f := NewFinalizer(repo, events.NoopPublisher{})
		f.now = func() time.Time { return now.Add(2 * time.Hour) }

		result, err := f.FinalizeIfExpired("auction1")
		require.NoError(t, err)
		require.True(t, result.Finalized)
		require.Equal(t, model.AuctionEnded, result.Status)
		require.Empty(t, result.WinningBidID)
	})
}

func TestFinalizer_FinalizeIfExpired_RetriesOnVersionRace(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Now().UTC()
	first := model.Auction{
		AuctionID: "auction1",
		SellerID:  "seller1",
		Status:    model.AuctionActive,
		StartDate: now.Add(-2 * time.Hour),
		EndDate:   now.Add(-time.Minute),
		Version:   3,
	}
	second := first
	second.CurrentBidID = "bid9"
	second.CurrentPrice = 300
	second.Version = 4

	conflict := fmt.Errorf("db: %w", auctionerrors.ErrConcurrentModification)

	mockRepo := repository.NewMockAuctionDB(ctrl)
	gomock.InOrder(
		mockRepo.EXPECT().GetAuction("auction1").Return(first, nil),
		mockRepo.EXPECT().CommitStatus(first, model.AuctionEnded).Return(conflict),
		mockRepo.EXPECT().GetAuction("auction1").Return(second, nil),
		mockRepo.EXPECT().CommitStatus(second, model.AuctionEnded).Return(nil),
		mockRepo.EXPECT().GetBid("bid9").Return(model.Bid{BidID: "bid9", UserID: "user9"}, nil),
		mockRepo.EXPECT().IncrementUserWonAuctions("user9").Return(nil),
	)

	f := NewFinalizer(mockRepo, events.NoopPublisher{})
	result, err := f.FinalizeIfExpired("auction1")

	require.NoError(t, err)
	require.True(t, result.Finalized)
	require.Equal(t, "bid9", result.WinningBidID)
}

func TestFinalizer_Cancel(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("empty_auction_id", func(t *testing.T) {
		t.Parallel()

		f := NewFinalizer(repository.NewMemoryRepo(), events.NoopPublisher{})
		require.ErrorIs(t, f.Cancel(""), auctionerrors.ErrInvalidAuction)
	})

	t.Run("unknown_auction", func(t *testing.T) {
		t.Parallel()

		f := NewFinalizer(repository.NewMemoryRepo(), events.NoopPublisher{})
		require.ErrorIs(t, f.Cancel("ghost"), auctionerrors.ErrAuctionNotFound)
	})

	t.Run("cancels_auction_without_bids", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewMemoryRepo()
		seedAuction(t, repo, "auction1", now.Add(time.Hour))

		f := NewFinalizer(repo, events.NoopPublisher{})
		require.NoError(t, f.Cancel("auction1"))

		auction, err := repo.GetAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, model.AuctionCancelled, auction.Status)
	})

	t.Run("rejected_once_a_bid_exists", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewMemoryRepo()
		seedAuction(t, repo, "auction1", now.Add(time.Hour))
		seedBid(t, repo, "bid1", "auction1", "user1", 150)

		f := NewFinalizer(repo, events.NoopPublisher{})
		require.ErrorIs(t, f.Cancel("auction1"), auctionerrors.ErrCancelHasBids)

		auction, err := repo.GetAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, model.AuctionActive, auction.Status)
	})

	t.Run("rejected_when_not_active", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewMemoryRepo()
		seedAuction(t, repo, "auction1", now.Add(time.Hour))

		f := NewFinalizer(repo, events.NoopPublisher{})
		require.NoError(t, f.Cancel("auction1"))
		require.ErrorIs(t, f.Cancel("auction1"), auctionerrors.ErrAuctionNotActive)
	})
}

func TestSweeper_Sweep(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	repo := repository.NewMemoryRepo()
	seedAuction(t, repo, "expired", now.Add(-time.Minute))
	seedAuction(t, repo, "running", now.Add(time.Hour))
	seedBid(t, repo, "bid1", "expired", "user1", 150)

	finalizer := NewFinalizer(repo, events.NoopPublisher{})
	sweeper := NewSweeper(repo, finalizer)
	sweeper.sweep()

	ended, err := repo.GetAuction("expired")
	require.NoError(t, err)
	require.Equal(t, model.AuctionEnded, ended.Status)

	winner, err := repo.GetBid("bid1")
	require.NoError(t, err)
	require.Equal(t, model.BidWinning, winner.Status)

	untouched, err := repo.GetAuction("running")
	require.NoError(t, err)
	require.Equal(t, model.AuctionActive, untouched.Status)
}
