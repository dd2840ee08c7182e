package server

import (
	handler "auction-ledger/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionHandler *handler.AuctionHandler, bidHandler *handler.BidHandler) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	bids := router.Group("/bids")
	{
		bids.POST("", bidHandler.PlaceBidHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.POST("/:auction_id/finalize", auctionHandler.FinalizeAuctionHandler)
		auctions.POST("/:auction_id/cancel", auctionHandler.CancelAuctionHandler)
		auctions.GET("/:auction_id/bids", bidHandler.GetBidHistoryHandler)
		auctions.GET("/:auction_id/winning", bidHandler.GetHighestBidHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/bids", bidHandler.GetBidsByUserHandler)
	}

	return router
}
