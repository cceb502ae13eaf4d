package api

import (
	"errors"
	"net/http"

	"raffle-tickets/internal/domain/inventory"
	reqdto "raffle-tickets/internal/handler/dto/request"
	resdto "raffle-tickets/internal/handler/dto/response"
	"raffle-tickets/internal/handler/httperr"
	"raffle-tickets/internal/infra/proofstore"
	"raffle-tickets/internal/pkg/errs"
	"raffle-tickets/internal/usecase/commands"
	"raffle-tickets/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	cmds   commands.PurchaseCommands
	q      queries.InventoryQueries
	proofs *proofstore.Storage
}

func NewTicketHandler(cmds commands.PurchaseCommands, q queries.InventoryQueries, proofs *proofstore.Storage) *TicketHandler {
	return &TicketHandler{
		cmds:   cmds,
		q:      q,
		proofs: proofs,
	}
}

// @Summary List tickets
// @Description List every ticket with its current status
// @Tags tickets
// @Produce json
// @Success 200 {array} resdto.TicketResponse
// @Router /api/tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	views, err := h.q.ListTickets(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load tickets", nil)
		return
	}

	response := make([]resdto.TicketResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromTicketView(v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Buy tickets
// @Description Reserve a set of tickets with buyer details and an optional proof-of-payment file
// @Tags tickets
// @Accept mpfd
// @Produce json
// @Success 201 {object} resdto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/tickets/buy [post]
func (h *TicketHandler) Buy(c *gin.Context) {
	var req reqdto.BuyTicketsRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	ticketIDs, err := req.TicketIDs()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ticket selection", nil)
		return
	}

	// The proof artifact lands on disk before the reservation transaction:
	// a failed upload must not leave a half-created purchase behind.
	var proof *string
	if fh, fileErr := c.FormFile("proof"); fileErr == nil {
		location, saveErr := h.proofs.Save(fh)
		if saveErr != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, saveErr, "Failed to store proof file", nil)
			return
		}
		proof = &location
	}

	view, err := h.cmds.Reserve(c.Request.Context(), req.ToDraft(ticketIDs, proof))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidInput):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid purchase data", nil)
		case errors.Is(err, errs.ErrTicketOutOfRange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Ticket out of range", nil)
		case errors.Is(err, errs.ErrTicketConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Some tickets are unavailable",
				gin.H{"tickets": conflictingTickets(err)})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to process purchase", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPurchaseView(view))
}

// conflictingTickets pulls the contested ids out of the error chain so the
// client can offer alternatives.
func conflictingTickets(err error) []int {
	var conflictErr *inventory.ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr.TicketIDs
	}
	return nil
}
