package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/fuelshare/internal/domain/models"
	"github.com/mamadbah2/fuelshare/internal/service/sharing"
)

// ListAllocations returns shared product records, optionally filtered by ?station=.
func (h *Handler) ListAllocations(c *gin.Context) {
	h.respond(c, http.StatusOK, gin.H{"allocations": h.engine.Allocations(c.Query("station"))})
}

// PreviewAllocation computes the totals of a share without submitting it.
func (h *Handler) PreviewAllocation(c *gin.Context) {
	var req allocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	draft, err := h.draftFrom(c, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	body := gin.H{
		"entries": draft.Entries(),
		"totals":  draft.Totals().Formatted(),
		"valid":   true,
	}
	if err := draft.Validate(); err != nil {
		body["valid"] = false
		body["message"] = err.Error()
	}
	c.JSON(http.StatusOK, body)
}

// CreateAllocation submits a share of product.
func (h *Handler) CreateAllocation(c *gin.Context) {
	var req allocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	draft, err := h.draftFrom(c, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.engine.SubmitDraft(h.requestContext(c), draft); err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, gin.H{"allocations": h.engine.Allocations("")})
}

// UpdateAllocation replaces an allocation record.
func (h *Handler) UpdateAllocation(c *gin.Context) {
	var req allocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.engine.UpdateAllocation(h.requestContext(c), req.record(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"allocations": h.engine.Allocations("")})
}

// DeleteAllocation removes an allocation record.
func (h *Handler) DeleteAllocation(c *gin.Context) {
	if err := h.engine.DeleteAllocation(h.requestContext(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"allocations": h.engine.Allocations("")})
}

// draftFrom replays a request through the allocation builder so duplicate or
// empty destinations are rejected the same way interactive edits are.
func (h *Handler) draftFrom(c *gin.Context, req allocationRequest) (*sharing.Builder, error) {
	draft := h.engine.NewDraft(h.operator(c))
	draft.SetProduct(req.Product)
	draft.SetDate(req.Date)
	draft.SetRate(string(req.Rate))
	draft.SetSalesRate(string(req.SalesRate))

	for _, d := range req.Destinations {
		entry, err := draft.AddDestination(models.Station{ID: d.StationID, Name: d.Station})
		if err != nil {
			return nil, err
		}
		if err := draft.UpdateQuantity(entry.ID, string(d.Quantity)); err != nil {
			return nil, err
		}
	}
	return draft, nil
}
