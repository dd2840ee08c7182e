package events

import "time"

// Event types published to the auction.events exchange
const (
	TypeBidAccepted      = "bid.accepted"
	TypeAuctionEnded     = "auction.ended"
	TypeAuctionCancelled = "auction.cancelled"
)

// Event is the JSON payload consumed by external collaborators (notifications,
// analytics). Events are best-effort and published outside the atomic commit.
type Event struct {
	Type       string    `json:"type"`
	AuctionID  string    `json:"auction_id"`
	BidID      string    `json:"bid_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits domain events to the outside world
type Publisher interface {
	Publish(event Event) error
	Close() error
}

// NoopPublisher discards all events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(Event) error { return nil }
func (NoopPublisher) Close() error        { return nil }
