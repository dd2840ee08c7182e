package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-ledger/internal/auctionerrors"
	model "auction-ledger/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionDB defines the auction and bid storage interface. The CommitBid and
// CommitStatus primitives are atomic compare-and-commits keyed on the auction
// version captured in the snapshot: a stale snapshot fails the whole unit with
// ErrConcurrentModification and applies nothing. All invariant enforcement
// lives in the ledger and finalizer, not here.
type AuctionDB interface {
	CreateAuction(auction model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	GetBid(bidID string) (model.Bid, error)
	BidsByAuction(auctionID string, limit int) ([]model.Bid, error)
	BidsByUser(userID string, limit int) ([]model.Bid, error)
	ActiveAuctionsEndingBy(cutoff time.Time) ([]string, error)
	CommitBid(snapshot model.Auction, bid model.Bid) error
	CommitStatus(snapshot model.Auction, status model.AuctionStatus) error
	IncrementUserTotalBids(userID string) error
	IncrementUserWonAuctions(userID string) error
	UserStats(userID string) (model.UserStats, error)
}

// auctionRecord bundles an auction with its bids behind a dedicated mutex, so
// commits on different auctions never contend with each other.
type auctionRecord struct {
	mu      sync.Mutex
	auction model.Auction
	bids    []model.Bid // acceptance order
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB.
// The outer RWMutex guards the record map and the secondary indexes; each
// record's own mutex serializes mutations of that auction and its bids.
// The bid and user indexes trail the record commit by a moment and are
// eventually consistent, which is fine for listing-style reads.
type MemoryRepo struct {
	mu       sync.RWMutex
	auctions map[string]*auctionRecord
	bidOwner map[string]string   // bidID -> auctionID
	userBids map[string][]string // userID -> bidIDs, placement order
	stats    map[string]*model.UserStats
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions: make(map[string]*auctionRecord),
		bidOwner: make(map[string]string),
		userBids: make(map[string][]string),
		stats:    make(map[string]*model.UserStats),
	}
}

// CreateAuction stores a new auction record
func (r *MemoryRepo) CreateAuction(auction model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.AuctionID]; ok {
		return fmt.Errorf("create auction %s: %w", auction.AuctionID, auctionerrors.ErrAuctionExists)
	}

	r.auctions[auction.AuctionID] = &auctionRecord{auction: auction}
	return nil
}

// GetAuction returns a consistent snapshot of the auction, including its
// current version for a later compare-and-commit.
func (r *MemoryRepo) GetAuction(auctionID string) (model.Auction, error) {
	rec, err := r.record(auctionID)
	if err != nil {
		return model.Auction{}, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.auction, nil
}

// GetBid returns a bid by id
func (r *MemoryRepo) GetBid(bidID string) (model.Bid, error) {
	r.mu.RLock()
	auctionID, ok := r.bidOwner[bidID]
	r.mu.RUnlock()
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}

	rec, err := r.record(auctionID)
	if err != nil {
		return model.Bid{}, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, b := range rec.bids {
		if b.BidID == bidID {
			return b, nil
		}
	}
	return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
}

// BidsByAuction returns the auction's bids ordered by amount descending.
// A non-positive limit returns all bids.
func (r *MemoryRepo) BidsByAuction(auctionID string, limit int) ([]model.Bid, error) {
	rec, err := r.record(auctionID)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	bids := append([]model.Bid(nil), rec.bids...)
	rec.mu.Unlock()

	sort.SliceStable(bids, func(i, j int) bool { return bids[i].Amount > bids[j].Amount })
	if limit > 0 && len(bids) > limit {
		bids = bids[:limit]
	}
	return bids, nil
}

// BidsByUser returns the user's bids ordered by placement time descending.
// A non-positive limit returns all bids.
func (r *MemoryRepo) BidsByUser(userID string, limit int) ([]model.Bid, error) {
	r.mu.RLock()
	bidIDs := append([]string(nil), r.userBids[userID]...)
	r.mu.RUnlock()

	if len(bidIDs) == 0 {
		return nil, fmt.Errorf("get bids for user %s: %w", userID, auctionerrors.ErrUserNoBids)
	}

	bids := make([]model.Bid, 0, len(bidIDs))
	for _, id := range bidIDs {
		bid, err := r.GetBid(id)
		if err != nil {
			continue // index entry outlived the record, skip
		}
		bids = append(bids, bid)
	}

	sort.SliceStable(bids, func(i, j int) bool { return bids[i].CreatedAt.After(bids[j].CreatedAt) })
	if limit > 0 && len(bids) > limit {
		bids = bids[:limit]
	}
	return bids, nil
}

// ActiveAuctionsEndingBy returns ids of active auctions whose end date is at
// or before the cutoff, for the finalization sweep.
func (r *MemoryRepo) ActiveAuctionsEndingBy(cutoff time.Time) ([]string, error) {
	r.mu.RLock()
	records := make([]*auctionRecord, 0, len(r.auctions))
	for _, rec := range r.auctions {
		records = append(records, rec)
	}
	r.mu.RUnlock()

	var ids []string
	for _, rec := range records {
		rec.mu.Lock()
		if rec.auction.Status == model.AuctionActive && !rec.auction.EndDate.After(cutoff) {
			ids = append(ids, rec.auction.AuctionID)
		}
		rec.mu.Unlock()
	}
	return ids, nil
}

// CommitBid atomically appends the new bid, demotes the previous leading bid
// and updates the auction aggregates, all against the snapshot version. A
// stale version fails with ErrConcurrentModification and nothing is applied.
func (r *MemoryRepo) CommitBid(snapshot model.Auction, bid model.Bid) error {
	rec, err := r.record(snapshot.AuctionID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	if rec.auction.Version != snapshot.Version {
		rec.mu.Unlock()
		return fmt.Errorf("commit bid on auction %s: %w", snapshot.AuctionID, auctionerrors.ErrConcurrentModification)
	}

	if prev := rec.auction.CurrentBidID; prev != "" {
		for i := range rec.bids {
			if rec.bids[i].BidID == prev {
				rec.bids[i].IsWinning = false
				rec.bids[i].Status = model.BidOutbid
				break
			}
		}
	}

	rec.bids = append(rec.bids, bid)
	rec.auction.CurrentPrice = bid.Amount
	rec.auction.CurrentBidID = bid.BidID
	rec.auction.BidCount++
	rec.auction.UpdatedAt = bid.CreatedAt
	rec.auction.Version++
	rec.mu.Unlock()

	r.mu.Lock()
	r.bidOwner[bid.BidID] = bid.AuctionID
	r.userBids[bid.UserID] = append(r.userBids[bid.UserID], bid.BidID)
	r.mu.Unlock()

	return nil
}

// CommitStatus atomically transitions the auction to the given status against
// the snapshot version. Transitioning to ended promotes the current leading
// bid, if any, to status winning in the same unit.
func (r *MemoryRepo) CommitStatus(snapshot model.Auction, status model.AuctionStatus) error {
	rec, err := r.record(snapshot.AuctionID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.auction.Version != snapshot.Version {
		return fmt.Errorf("commit status on auction %s: %w", snapshot.AuctionID, auctionerrors.ErrConcurrentModification)
	}

	if status == model.AuctionEnded && rec.auction.CurrentBidID != "" {
		for i := range rec.bids {
			if rec.bids[i].BidID == rec.auction.CurrentBidID {
				rec.bids[i].Status = model.BidWinning
				break
			}
		}
	}

	rec.auction.Status = status
	rec.auction.UpdatedAt = time.Now().UTC()
	rec.auction.Version++
	return nil
}

// IncrementUserTotalBids bumps the user's lifetime bid counter
func (r *MemoryRepo) IncrementUserTotalBids(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userStatsLocked(userID).TotalBids++
	return nil
}

// IncrementUserWonAuctions bumps the user's won-auctions counter
func (r *MemoryRepo) IncrementUserWonAuctions(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userStatsLocked(userID).WonAuctions++
	return nil
}

// UserStats returns the user's analytics counters
func (r *MemoryRepo) UserStats(userID string) (model.UserStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.stats[userID]; ok {
		return *s, nil
	}
	return model.UserStats{UserID: userID}, nil
}

func (r *MemoryRepo) userStatsLocked(userID string) *model.UserStats {
	s, ok := r.stats[userID]
	if !ok {
		s = &model.UserStats{UserID: userID}
		r.stats[userID] = s
	}
	return s
}

func (r *MemoryRepo) record(auctionID string) (*auctionRecord, error) {
	r.mu.RLock()
	rec, ok := r.auctions[auctionID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return rec, nil
}
