package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-ledger/internal/config"
	"auction-ledger/internal/events"
	"auction-ledger/internal/ledger"
	"auction-ledger/internal/lifecycle"
	"auction-ledger/internal/query"
	"auction-ledger/internal/repository"
	"auction-ledger/internal/server"
	handler "auction-ledger/services/auction/handler"
	"auction-ledger/utils"
)

func main() {
	cfg := config.Load()

	repo := repository.NewMemoryRepo()
	publisher := connectPublisher(cfg)
	defer publisher.Close()

	bidLedger := ledger.NewBidLedger(repo, publisher)
	finalizer := lifecycle.NewFinalizer(repo, publisher)
	queries := query.NewService(repo)

	prepopulateAuctions(bidLedger)

	ctx, stopSweeper := context.WithCancel(context.Background())
	sweeper := lifecycle.NewSweeper(repo, finalizer)
	go sweeper.Run(ctx, cfg.SweepInterval)

	auctionHandler := handler.NewAuctionHandler(bidLedger, finalizer, queries)
	bidHandler := handler.NewBidHandler(bidLedger, queries)
	router := server.SetupRouter(auctionHandler, bidHandler)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		utils.Info("starting auction server", map[string]any{"port": cfg.Port, "env": cfg.Env})
		if err := router.Run(":" + cfg.Port); err != nil {
			utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	<-stop
	stopSweeper()
	utils.Info("server shutting down", nil)
}

// connectPublisher dials RabbitMQ when configured, otherwise falls back to the
// noop publisher. Events are best-effort, so a broker failure is not fatal.
func connectPublisher(cfg *config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NoopPublisher{}
	}

	publisher, err := events.ConnectAMQP(cfg.AMQPURL)
	if err != nil {
		utils.Warn("rabbitmq unavailable, events disabled", map[string]any{"error": err.Error()})
		return events.NoopPublisher{}
	}
	utils.Info("publishing auction events to rabbitmq", nil)
	return publisher
}

// prepopulateAuctions seeds a few sample listings for local development
func prepopulateAuctions(l *ledger.BidLedger) {
	now := time.Now().UTC()
	inputs := []ledger.CreateAuctionInput{
		{Title: "Vintage film camera", Description: "35mm rangefinder, serviced", Category: "cameras", SellerID: "seller1", InitialPrice: 100, StartDate: now, EndDate: now.Add(24 * time.Hour)},
		{Title: "Mechanical keyboard", Description: "Tenkeyless, brown switches", Category: "electronics", SellerID: "seller2", InitialPrice: 40, StartDate: now, EndDate: now.Add(48 * time.Hour)},
		{Title: "First edition paperback", Description: "Light shelf wear", Category: "books", SellerID: "seller1", InitialPrice: 15, StartDate: now, EndDate: now.Add(72 * time.Hour)},
	}

	for _, in := range inputs {
		auction, err := l.CreateAuction(in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed auction %q: %v\n", in.Title, err)
			continue
		}
		utils.Info("seeded auction", map[string]any{"auction_id": auction.AuctionID, "title": auction.Title})
	}
}
