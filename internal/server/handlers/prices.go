package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/fuelshare/internal/domain/models"
	"github.com/mamadbah2/fuelshare/internal/service/pricing"
)

// PreviewPriceChange returns the tanks a price change would touch.
func (h *Handler) PreviewPriceChange(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	change, err := h.priceChange(c, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	set, err := h.engine.PreviewPriceChange(change)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var selected *models.Tank
	if req.SelectedTankID != "" {
		if tank, err := h.engine.Tank(req.SelectedTankID); err == nil {
			selected = &tank
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"changeSet":       set,
		"availableScopes": pricing.AvailableScopes(selected),
	})
}

// ApplyPriceChange commits a price change.
func (h *Handler) ApplyPriceChange(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	change, err := h.priceChange(c, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.engine.ApplyPriceChange(h.requestContext(c), change)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"result": result, "tanks": h.engine.Tanks("")})
}

// priceChange maps a request onto the domain. An omitted scope means the
// selected tank when there is one, otherwise all stations.
func (h *Handler) priceChange(c *gin.Context, req priceRequest) (models.PriceChangeRequest, error) {
	scope := models.ScopeAll
	switch {
	case req.Scope != "":
		parsed, err := pricing.ParseScope(req.Scope)
		if err != nil {
			return models.PriceChangeRequest{}, err
		}
		scope = parsed
	case req.SelectedTankID != "":
		scope = models.ScopeSelected
	}

	return models.PriceChangeRequest{
		FuelType:       req.FuelType,
		NewPrice:       number(req.NewPrice),
		Scope:          scope,
		SelectedTankID: req.SelectedTankID,
		EffectiveDate:  req.EffectiveDate,
		Reason:         req.Reason,
		UpdatedBy:      h.operator(c),
	}, nil
}
