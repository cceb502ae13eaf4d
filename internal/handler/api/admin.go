package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	reqdto "raffle-tickets/internal/handler/dto/request"
	resdto "raffle-tickets/internal/handler/dto/response"
	"raffle-tickets/internal/handler/httperr"
	"raffle-tickets/internal/pkg/errs"
	"raffle-tickets/internal/usecase/commands"
	"raffle-tickets/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// maxImportBytes caps an uploaded inventory document.
const maxImportBytes = 32 << 20

type AdminHandler struct {
	purchaseCmds  commands.PurchaseCommands
	inventoryCmds commands.InventoryCommands
	q             queries.InventoryQueries
}

func NewAdminHandler(
	purchaseCmds commands.PurchaseCommands,
	inventoryCmds commands.InventoryCommands,
	q queries.InventoryQueries,
) *AdminHandler {
	return &AdminHandler{
		purchaseCmds:  purchaseCmds,
		inventoryCmds: inventoryCmds,
		q:             q,
	}
}

// @Summary Get settings
// @Tags admin
// @Produce json
// @Security AdminSecret
// @Success 200 {object} resdto.SettingsResponse
// @Router /api/admin/settings [get]
func (h *AdminHandler) GetSettings(c *gin.Context) {
	view, err := h.q.Settings(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load settings", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSettingsView(view))
}

// @Summary Set ticket capacity
// @Description Grow or shrink the ticket pool; shrinking below an active ticket is refused
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminSecret
// @Success 200 {object} resdto.SettingsResponse
// @Failure 400 {object} map[string]string
// @Router /api/admin/settings/tickets [post]
func (h *AdminHandler) ResizeCapacity(c *gin.Context) {
	var req reqdto.ResizeCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid capacity", nil)
		return
	}

	view, err := h.inventoryCmds.Resize(c.Request.Context(), req.TotalTickets)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidInput):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid capacity", nil)
		case errors.Is(err, errs.ErrCapacityTooLow):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Capacity below active tickets", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to resize", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromSettingsView(view))
}

// @Summary List purchases
// @Description List purchases newest first, optionally filtered by status
// @Tags admin
// @Produce json
// @Security AdminSecret
// @Success 200 {array} resdto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Router /api/admin/purchases [get]
func (h *AdminHandler) ListPurchases(c *gin.Context) {
	views, err := h.q.ListPurchases(c.Request.Context(), c.Query("status"))
	if err != nil {
		if errors.Is(err, queries.ErrInvalidStatusFilter) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status filter", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load purchases", nil)
		return
	}

	response := make([]*resdto.PurchaseResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromPurchaseView(v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get purchase
// @Tags admin
// @Produce json
// @Security AdminSecret
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 404 {object} map[string]string
// @Router /api/admin/purchases/{id} [get]
func (h *AdminHandler) GetPurchase(c *gin.Context) {
	id, ok := h.purchaseID(c)
	if !ok {
		return
	}
	view, err := h.q.GetPurchase(c.Request.Context(), id)
	if err != nil {
		h.abortLedgerErr(c, err, "Failed to load purchase")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPurchaseView(view))
}

// @Summary Approve purchase
// @Description Mark the purchase and its tickets approved; re-approving is a no-op
// @Tags admin
// @Produce json
// @Security AdminSecret
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/admin/purchases/{id}/approve [post]
func (h *AdminHandler) ApprovePurchase(c *gin.Context) {
	id, ok := h.purchaseID(c)
	if !ok {
		return
	}
	view, err := h.purchaseCmds.Approve(c.Request.Context(), id)
	if err != nil {
		h.abortLedgerErr(c, err, "Failed to approve purchase")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPurchaseView(view))
}

// @Summary Reject purchase
// @Description Mark the purchase rejected and free all of its tickets
// @Tags admin
// @Produce json
// @Security AdminSecret
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 404 {object} map[string]string
// @Router /api/admin/purchases/{id}/reject [post]
func (h *AdminHandler) RejectPurchase(c *gin.Context) {
	id, ok := h.purchaseID(c)
	if !ok {
		return
	}
	view, err := h.purchaseCmds.Reject(c.Request.Context(), id)
	if err != nil {
		h.abortLedgerErr(c, err, "Failed to reject purchase")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPurchaseView(view))
}

// @Summary Update purchase contact fields
// @Description Change buyer name and email; ticket ids and status are immutable here
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminSecret
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 404 {object} map[string]string
// @Router /api/admin/purchases/{id} [put]
func (h *AdminHandler) UpdatePurchase(c *gin.Context) {
	id, ok := h.purchaseID(c)
	if !ok {
		return
	}
	var req reqdto.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.purchaseCmds.UpdateContact(c.Request.Context(), id, req.Name, req.Email)
	if err != nil {
		h.abortLedgerErr(c, err, "Failed to update purchase")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPurchaseView(view))
}

// @Summary Delete purchase
// @Description Remove the purchase record and free its tickets
// @Tags admin
// @Produce json
// @Security AdminSecret
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/admin/purchases/{id} [delete]
func (h *AdminHandler) DeletePurchase(c *gin.Context) {
	id, ok := h.purchaseID(c)
	if !ok {
		return
	}
	if err := h.purchaseCmds.Delete(c.Request.Context(), id); err != nil {
		h.abortLedgerErr(c, err, "Failed to delete purchase")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Download inventory document
// @Description The raw stored JSON document, usable for backup and re-import
// @Tags admin
// @Produce json
// @Security AdminSecret
// @Success 200 {file} file
// @Router /api/admin/db/download [get]
func (h *AdminHandler) DownloadDocument(c *gin.Context) {
	data, err := h.q.ExportDocument(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to export document", nil)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="db.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// @Summary Upload inventory document
// @Description Replace the whole inventory state with an uploaded document
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminSecret
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /api/admin/db/upload [post]
func (h *AdminHandler) UploadDocument(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read document", nil)
		return
	}
	if err := h.inventoryCmds.ImportDocument(c.Request.Context(), raw); err != nil {
		if errors.Is(err, errs.ErrInvalidInput) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid inventory document", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to import document", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) purchaseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid purchase id", nil)
		return 0, false
	}
	return id, true
}

func (h *AdminHandler) abortLedgerErr(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, errs.ErrPurchaseNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Purchase not found", nil)
	case errors.Is(err, errs.ErrPurchaseRejected):
		httperr.AbortWithError(c, http.StatusConflict, err, "Purchase was already rejected", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}
