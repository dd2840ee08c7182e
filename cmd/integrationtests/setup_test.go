package integrationtests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auction-ledger/internal/events"
	"auction-ledger/internal/ledger"
	"auction-ledger/internal/lifecycle"
	"auction-ledger/internal/query"
	"auction-ledger/internal/repository"
	"auction-ledger/internal/server"
	handler "auction-ledger/services/auction/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope mirrors the JSON body produced by utils.JSONResponse / JSONError
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// testServer wires the full stack against a fresh in-memory store, exactly as
// main does minus the broker and the background sweeper.
type testServer struct {
	router *gin.Engine
	repo   *repository.MemoryRepo
}

func newTestServer() *testServer {
	repo := repository.NewMemoryRepo()
	publisher := events.NoopPublisher{}

	bidLedger := ledger.NewBidLedger(repo, publisher)
	finalizer := lifecycle.NewFinalizer(repo, publisher)
	queries := query.NewService(repo)

	auctionHandler := handler.NewAuctionHandler(bidLedger, finalizer, queries)
	bidHandler := handler.NewBidHandler(bidLedger, queries)

	return &testServer{
		router: server.SetupRouter(auctionHandler, bidHandler),
		repo:   repo,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

// createAuction creates a listing over the API and returns its ID
func (s *testServer) createAuction(t *testing.T, sellerID string, initialPrice float64, window time.Duration) string {
	t.Helper()
	now := time.Now().UTC()
	body := fmt.Sprintf(
		`{"title":"Test listing","category":"misc","seller_id":%q,"initial_price":%g,"start_date":%q,"end_date":%q}`,
		sellerID, initialPrice,
		now.Add(-time.Minute).Format(time.RFC3339Nano),
		now.Add(window).Format(time.RFC3339Nano),
	)

	w, env := s.do(t, http.MethodPost, "/auctions", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var auction struct {
		AuctionID string `json:"auction_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auction))
	require.NotEmpty(t, auction.AuctionID)
	return auction.AuctionID
}

func (s *testServer) placeBid(t *testing.T, auctionID, userID string, amount float64) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	body := fmt.Sprintf(`{"auction_id":%q,"user_id":%q,"amount":%g}`, auctionID, userID, amount)
	return s.do(t, http.MethodPost, "/bids", body)
}

// getAuction fetches the auction view, optionally joined with its bids
func (s *testServer) getAuction(t *testing.T, auctionID string, withBids bool) map[string]any {
	t.Helper()
	path := "/auctions/" + auctionID
	if withBids {
		path += "?with_bids=true"
	}
	w, env := s.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)

	var view map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &view))
	return view
}
