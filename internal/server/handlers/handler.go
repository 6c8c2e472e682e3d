package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/fuelshare/internal/domain/models"
	"github.com/mamadbah2/fuelshare/internal/service/orchestrator"
	"github.com/mamadbah2/fuelshare/internal/service/sharing"
	"github.com/mamadbah2/fuelshare/pkg/clients/stationapi"
)

const offlineNotice = "Station API unreachable; changes are kept locally until the connection is restored."

// Engine is the sync orchestrator surface used by the HTTP layer.
type Engine interface {
	Connectivity() models.ConnectivityState
	Retry(ctx context.Context) error
	Stations() []models.Station

	Tanks(station string) []models.Tank
	Tank(id string) (models.Tank, error)
	AddTank(ctx context.Context, in models.TankInput) error
	UpdateTank(ctx context.Context, id string, in models.TankInput) error
	RefillTank(ctx context.Context, id string, liters decimal.Decimal) error
	DeleteTank(ctx context.Context, id string) error

	Allocations(station string) []models.AllocationRecord
	NewDraft(operator string) *sharing.Builder
	SubmitDraft(ctx context.Context, draft *sharing.Builder) error
	UpdateAllocation(ctx context.Context, rec models.AllocationRecord) error
	DeleteAllocation(ctx context.Context, id string) error

	PreviewPriceChange(req models.PriceChangeRequest) (models.PriceChangeSet, error)
	ApplyPriceChange(ctx context.Context, req models.PriceChangeRequest) (models.PriceChangeResult, error)
}

// Handler adapts the orchestrator to gin routes.
type Handler struct {
	engine          Engine
	defaultOperator string
	logger          *zap.Logger
}

// NewHandler constructs the HTTP handler adapter.
func NewHandler(engine Engine, defaultOperator string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{engine: engine, defaultOperator: defaultOperator, logger: logger}
}

// GetConnectivity reports the station API connectivity.
func (h *Handler) GetConnectivity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"connectivity": h.engine.Connectivity()})
}

// RetryConnectivity re-probes the station API.
func (h *Handler) RetryConnectivity(c *gin.Context) {
	if err := h.engine.Retry(h.requestContext(c)); err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{})
}

// ListStations returns the station catalog.
func (h *Handler) ListStations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stations": h.engine.Stations()})
}

// operator identifies the caller, falling back to the configured default.
func (h *Handler) operator(c *gin.Context) string {
	if op := strings.TrimSpace(c.GetHeader("X-Operator")); op != "" {
		return op
	}
	return h.defaultOperator
}

// requestContext forwards the caller's bearer token to the station API.
func (h *Handler) requestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	auth := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok && strings.TrimSpace(token) != "" {
		ctx = stationapi.WithToken(ctx, strings.TrimSpace(token))
	}
	return ctx
}

// respond writes body plus the connectivity state, and an info notice when
// the engine is serving local data.
func (h *Handler) respond(c *gin.Context, status int, body gin.H) {
	state := h.engine.Connectivity()
	body["connectivity"] = state
	if state.Status == models.Disconnected {
		body["notice"] = gin.H{"level": "info", "message": offlineNotice}
	}
	c.JSON(status, body)
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	h.logger.Debug("invalid request body", zap.Error(err))
	c.JSON(http.StatusBadRequest, errorResponse{Code: "validation_error", Message: "invalid request body"})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var apiErr *stationapi.APIError

	switch {
	case orchestrator.IsValidation(err):
		h.logger.Debug("validation failed", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Code: "validation_error", Message: err.Error()})
	case errors.Is(err, orchestrator.ErrSubmissionInProgress):
		c.JSON(http.StatusConflict, errorResponse{Code: "submission_in_progress", Message: err.Error()})
	case orchestrator.IsNotFound(err):
		c.JSON(http.StatusNotFound, errorResponse{Code: "not_found", Message: err.Error()})
	case errors.As(err, &apiErr):
		h.logger.Error("station api error", zap.Int("status", apiErr.StatusCode), zap.String("message", apiErr.Message))
		c.JSON(http.StatusBadGateway, errorResponse{Code: "station_api_error", Message: apiErr.Message, Status: apiErr.StatusCode})
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Code: "internal_error", Message: "unexpected error"})
	}
}
