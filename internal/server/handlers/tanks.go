package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListTanks returns tanks, optionally filtered by ?station=.
func (h *Handler) ListTanks(c *gin.Context) {
	h.respond(c, http.StatusOK, gin.H{"tanks": h.engine.Tanks(c.Query("station"))})
}

// CreateTank adds a tank.
func (h *Handler) CreateTank(c *gin.Context) {
	var req tankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.engine.AddTank(h.requestContext(c), req.input()); err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, gin.H{"tanks": h.engine.Tanks("")})
}

// UpdateTank replaces a tank's editable fields.
func (h *Handler) UpdateTank(c *gin.Context) {
	var req tankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.engine.UpdateTank(h.requestContext(c), c.Param("id"), req.input()); err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"tanks": h.engine.Tanks("")})
}

// RefillTank adds liters to a tank.
func (h *Handler) RefillTank(c *gin.Context) {
	var req refillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.engine.RefillTank(h.requestContext(c), c.Param("id"), number(req.Liters)); err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"tanks": h.engine.Tanks("")})
}

// DeleteTank removes a tank.
func (h *Handler) DeleteTank(c *gin.Context) {
	if err := h.engine.DeleteTank(h.requestContext(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"tanks": h.engine.Tanks("")})
}
