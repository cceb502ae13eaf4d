//go:build unit

package api_test

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"raffle-tickets/internal/handler"
	"raffle-tickets/internal/handler/api"
	resdto "raffle-tickets/internal/handler/dto/response"
	"raffle-tickets/internal/handler/middleware"
	"raffle-tickets/internal/infra/proofstore"
	"raffle-tickets/internal/infra/store"
	"raffle-tickets/internal/pkg/clock"
	"raffle-tickets/internal/pkg/config"
	"raffle-tickets/internal/usecase/commands"
	"raffle-tickets/internal/usecase/queries"
	"raffle-tickets/tests/common/builder"
	"raffle-tickets/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testApp wires the real stack over a throwaway store; handler tests exercise
// routing, binding and error mapping end to end.
type testApp struct {
	router *gin.Engine
	store  *store.Store
	cfg    config.Config
	clock  *clock.FixedClock
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	dir := t.TempDir()
	cfg.Store.DataFile = filepath.Join(dir, "db.json")
	cfg.Store.UploadDir = filepath.Join(dir, "uploads")

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	s, err := store.New(cfg.Store.DataFile, cfg.Store.DefaultCapacity, logger)
	if err != nil {
		t.Fatalf("store init: %v", err)
	}
	proofs, err := proofstore.New(cfg.Store.UploadDir)
	if err != nil {
		t.Fatalf("proof storage init: %v", err)
	}

	fc := clock.NewFixedClock(testTime)
	purchaseCmds := commands.NewPurchaseCommands(s, fc)
	inventoryCmds := commands.NewInventoryCommands(s)
	q := queries.NewInventoryQueries(s)

	engine := gin.New()
	handler.NewRouter(
		engine,
		cfg,
		api.NewTicketHandler(purchaseCmds, q, proofs),
		api.NewAdminHandler(purchaseCmds, inventoryCmds, q),
		middleware.NewAdminMiddleware(cfg),
		middleware.NewRateLimiter(cfg.RateLimit),
		proofs,
	)

	return &testApp{router: engine, store: s, cfg: cfg, clock: fc}
}

type TicketHandlerTestSuite struct {
	suite.Suite
	app *testApp
}

func (s *TicketHandlerTestSuite) SetupTest() {
	s.app = newTestApp(s.T())
}

func TestTicketHandlerSuite(t *testing.T) {
	suite.Run(t, new(TicketHandlerTestSuite))
}

func (s *TicketHandlerTestSuite) TestList() {
	w := httptest.PerformRequest(s.T(), s.app.router, http.MethodGet, "/api/tickets", nil, "")

	var tickets []resdto.TicketResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &tickets)

	s.Len(tickets, 10)
	s.Equal(0, tickets[0].ID)
	s.Equal("free", tickets[0].Status)
}

func (s *TicketHandlerTestSuite) TestBuy() {
	url := "/api/tickets/buy"

	s.Run("reserves tickets without a proof file", func() {
		fields := builder.NewPurchaseBuilder().BuildFormMap("[1,2]")
		w := httptest.PerformMultipart(s.T(), s.app.router, url, fields, "", "", nil)

		var created resdto.PurchaseResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &created)

		s.Equal("pending", created.Status)
		s.Equal([]int{1, 2}, created.TicketIDs)
		s.Nil(created.Proof)
		s.Equal(testTime.UnixMilli(), created.ID)
	})

	s.Run("stores the proof file and serves it back", func() {
		fields := builder.NewPurchaseBuilder().BuildFormMap("[3]")
		w := httptest.PerformMultipart(s.T(), s.app.router, url, fields, "proof", "receipt.png", []byte("png-bytes"))

		var created resdto.PurchaseResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &created)

		s.Require().NotNil(created.Proof)
		s.Contains(*created.Proof, "/uploads/proof-")

		download := httptest.PerformRequest(s.T(), s.app.router, http.MethodGet, *created.Proof, nil, "")
		s.Equal(http.StatusOK, download.Code)
		s.Equal("png-bytes", download.Body.String())
	})

	s.Run("missing form field", func() {
		fields := builder.NewPurchaseBuilder().BuildFormMap("[1]")
		delete(fields, "email")
		w := httptest.PerformMultipart(s.T(), s.app.router, url, fields, "", "", nil)

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
	})

	s.Run("malformed ticket selection", func() {
		fields := builder.NewPurchaseBuilder().BuildFormMap("one,two")
		w := httptest.PerformMultipart(s.T(), s.app.router, url, fields, "", "", nil)

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid ticket selection")
	})

	s.Run("out of range tickets", func() {
		fields := builder.NewPurchaseBuilder().BuildFormMap("[99]")
		w := httptest.PerformMultipart(s.T(), s.app.router, url, fields, "", "", nil)

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Ticket out of range")
	})

	s.Run("conflict returns the contested ids", func() {
		fields := builder.NewPurchaseBuilder().BuildFormMap("[5,6]")
		w := httptest.PerformMultipart(s.T(), s.app.router, url, fields, "", "", nil)
		s.Require().Equal(http.StatusCreated, w.Code)

		w = httptest.PerformMultipart(s.T(), s.app.router, url, builder.NewPurchaseBuilder().BuildFormMap("[6,7]"), "", "", nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Some tickets are unavailable")

		var body struct {
			Detail struct {
				Tickets []int `json:"tickets"`
			} `json:"detail"`
		}
		httptest.DecodeResponseBody(s.T(), w.Body, &body)
		s.Equal([]int{6}, body.Detail.Tickets)
	})

	s.Run("duplicate tickets in the selection", func() {
		fields := builder.NewPurchaseBuilder().BuildFormMap("[8,8]")
		w := httptest.PerformMultipart(s.T(), s.app.router, url, fields, "", "", nil)

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid purchase data")
	})
}

func (s *TicketHandlerTestSuite) TestRateLimit() {
	s.app.cfg.RateLimit.BuyPerSecond = 1
	s.app.cfg.RateLimit.BuyBurst = 1

	// Rebuild the router with the tight limit
	engine := gin.New()
	app := s.app
	limiter := middleware.NewRateLimiter(app.cfg.RateLimit)
	fc := clock.NewFixedClock(testTime)
	purchaseCmds := commands.NewPurchaseCommands(app.store, fc)
	inventoryCmds := commands.NewInventoryCommands(app.store)
	q := queries.NewInventoryQueries(app.store)
	proofs, err := proofstore.New(app.cfg.Store.UploadDir)
	s.Require().NoError(err)
	handler.NewRouter(
		engine, app.cfg,
		api.NewTicketHandler(purchaseCmds, q, proofs),
		api.NewAdminHandler(purchaseCmds, inventoryCmds, q),
		middleware.NewAdminMiddleware(app.cfg),
		limiter,
		proofs,
	)

	first := httptest.PerformMultipart(s.T(), engine, "/api/tickets/buy", builder.NewPurchaseBuilder().BuildFormMap("[0]"), "", "", nil)
	s.Equal(http.StatusCreated, first.Code)

	second := httptest.PerformMultipart(s.T(), engine, "/api/tickets/buy", builder.NewPurchaseBuilder().BuildFormMap("[1]"), "", "", nil)
	s.Equal(http.StatusTooManyRequests, second.Code)
}

func (s *TicketHandlerTestSuite) TestHealthCheck() {
	w := httptest.PerformRequest(s.T(), s.app.router, http.MethodGet, "/health", nil, "")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"ok"`)
}
