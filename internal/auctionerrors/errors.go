package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrBidNotFound      = errors.New("bid not found")
	ErrNoBids           = errors.New("no bids found for auction")
	ErrUserNoBids       = errors.New("user has not placed any bids")
	ErrAuctionExists    = errors.New("auction already exists")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// business logic errors
var (
	ErrInvalidBid             = errors.New("invalid bid")
	ErrInvalidAuction         = errors.New("invalid auction")
	ErrBidTooLow              = errors.New("bid amount too low")
	ErrAuctionNotActive       = errors.New("auction not active")
	ErrSelfBidForbidden       = errors.New("seller cannot bid on own auction")
	ErrConcurrentModification = errors.New("auction changed concurrently")
	ErrCancelHasBids          = errors.New("auction with bids cannot be cancelled")
)
