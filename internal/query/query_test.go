package query

import (
	"testing"
	"time"

	"auction-ledger/internal/auctionerrors"
	model "auction-ledger/internal/models"
	"auction-ledger/internal/repository"

	"github.com/stretchr/testify/require"
)

func seedRepo(t *testing.T) *repository.MemoryRepo {
	t.Helper()
	now := time.Now().UTC()
	repo := repository.NewMemoryRepo()

	for _, id := range []string{"auction1", "empty"} {
		require.NoError(t, repo.CreateAuction(model.Auction{
			AuctionID:    id,
			Title:        id + " title",
			Category:     "misc",
			SellerID:     "seller1",
			InitialPrice: 100,
			CurrentPrice: 100,
			Status:       model.AuctionActive,
			StartDate:    now.Add(-time.Hour),
			EndDate:      now.Add(time.Hour),
			Version:      1,
		}))
	}

	bids := []model.Bid{
		{BidID: "bid1", AuctionID: "auction1", UserID: "user1", Amount: 150, CreatedAt: now},
		{BidID: "bid2", AuctionID: "auction1", UserID: "user2", Amount: 200, CreatedAt: now.Add(time.Second)},
		{BidID: "bid3", AuctionID: "auction1", UserID: "user1", Amount: 250, CreatedAt: now.Add(2 * time.Second)},
	}
	for _, bid := range bids {
		bid.IsWinning = true
		bid.Status = model.BidActive
		snapshot, err := repo.GetAuction(bid.AuctionID)
		require.NoError(t, err)
		require.NoError(t, repo.CommitBid(snapshot, bid))
	}
	return repo
}

func TestService_HighestBid(t *testing.T) {
	t.Parallel()

	svc := NewService(seedRepo(t))

	t.Run("returns_current_leader", func(t *testing.T) {
		t.Parallel()

		bid, err := svc.HighestBid("auction1")
		require.NoError(t, err)
		require.Equal(t, "bid3", bid.BidID)
		require.Equal(t, 250.0, bid.Amount)
		require.True(t, bid.IsWinning)
	})

	t.Run("no_bids", func(t *testing.T) {
		t.Parallel()

		_, err := svc.HighestBid("empty")
		require.ErrorIs(t, err, auctionerrors.ErrNoBids)
	})

	t.Run("unknown_auction", func(t *testing.T) {
		t.Parallel()

		_, err := svc.HighestBid("ghost")
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})

	t.Run("empty_auction_id", func(t *testing.T) {
		t.Parallel()

		_, err := svc.HighestBid("")
		require.ErrorIs(t, err, auctionerrors.ErrInvalidAuction)
	})
}

func TestService_BidHistory(t *testing.T) {
	t.Parallel()

	svc := NewService(seedRepo(t))

	t.Run("ordered_by_amount_desc", func(t *testing.T) {
		t.Parallel()

		bids, err := svc.BidHistory("auction1", 0)
		require.NoError(t, err)
		require.Len(t, bids, 3)
		require.Equal(t, "bid3", bids[0].BidID)
		require.Equal(t, "bid2", bids[1].BidID)
		require.Equal(t, "bid1", bids[2].BidID)
	})

	t.Run("limit_truncates", func(t *testing.T) {
		t.Parallel()

		bids, err := svc.BidHistory("auction1", 2)
		require.NoError(t, err)
		require.Len(t, bids, 2)
		require.Equal(t, "bid3", bids[0].BidID)
	})

	t.Run("auction_without_bids", func(t *testing.T) {
		t.Parallel()

		bids, err := svc.BidHistory("empty", 0)
		require.NoError(t, err)
		require.Empty(t, bids)
	})

	t.Run("unknown_auction", func(t *testing.T) {
		t.Parallel()

		_, err := svc.BidHistory("ghost", 0)
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})
}

func TestService_BidsForUser(t *testing.T) {
	t.Parallel()

	svc := NewService(seedRepo(t))

	t.Run("newest_first", func(t *testing.T) {
		t.Parallel()

		bids, err := svc.BidsForUser("user1")
		require.NoError(t, err)
		require.Len(t, bids, 2)
		require.Equal(t, "bid3", bids[0].BidID)
		require.Equal(t, "bid1", bids[1].BidID)
	})

	t.Run("user_without_bids", func(t *testing.T) {
		t.Parallel()

		_, err := svc.BidsForUser("ghost")
		require.ErrorIs(t, err, auctionerrors.ErrUserNoBids)
	})

	t.Run("empty_user_id", func(t *testing.T) {
		t.Parallel()

		_, err := svc.BidsForUser("")
		require.ErrorIs(t, err, auctionerrors.ErrInvalidBid)
	})
}

func TestService_AuctionWithBids(t *testing.T) {
	t.Parallel()

	svc := NewService(seedRepo(t))

	t.Run("without_bids_flag", func(t *testing.T) {
		t.Parallel()

		view, err := svc.AuctionWithBids("auction1", false)
		require.NoError(t, err)
		require.Equal(t, "auction1", view.AuctionID)
		require.Equal(t, 250.0, view.CurrentPrice)
		require.Nil(t, view.Bids)
		require.Nil(t, view.HighestBid)
	})

	t.Run("with_bids_flag", func(t *testing.T) {
		t.Parallel()

		view, err := svc.AuctionWithBids("auction1", true)
		require.NoError(t, err)
		require.Len(t, view.Bids, 3)
		require.NotNil(t, view.HighestBid)
		require.Equal(t, "bid3", view.HighestBid.BidID)
	})

	t.Run("with_bids_flag_but_no_bids", func(t *testing.T) {
		t.Parallel()

		view, err := svc.AuctionWithBids("empty", true)
		require.NoError(t, err)
		require.Empty(t, view.Bids)
		require.Nil(t, view.HighestBid)
	})

	t.Run("unknown_auction", func(t *testing.T) {
		t.Parallel()

		_, err := svc.AuctionWithBids("ghost", true)
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})
}
