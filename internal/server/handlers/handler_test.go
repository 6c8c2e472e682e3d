package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/fuelshare/internal/domain/models"
	"github.com/mamadbah2/fuelshare/internal/service/orchestrator"
	"github.com/mamadbah2/fuelshare/internal/service/pricing"
	"github.com/mamadbah2/fuelshare/internal/service/sharing"
	"github.com/mamadbah2/fuelshare/pkg/clients/stationapi"
)

type fakeEngine struct {
	status    models.Connectivity
	err       error
	tanks     []models.Tank
	submitted *sharing.Builder
	refilled  decimal.Decimal
	updated   models.AllocationRecord
	price     models.PriceChangeRequest
}

func (f *fakeEngine) Connectivity() models.ConnectivityState {
	return models.ConnectivityState{Status: f.status}
}
func (f *fakeEngine) Retry(context.Context) error { return f.err }
func (f *fakeEngine) Stations() []models.Station {
	return []models.Station{{ID: "st-accra", Name: "Accra"}}
}
func (f *fakeEngine) Tanks(string) []models.Tank { return f.tanks }
func (f *fakeEngine) Tank(id string) (models.Tank, error) {
	for _, t := range f.tanks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Tank{}, orchestrator.ErrTankNotFound
}
func (f *fakeEngine) AddTank(context.Context, models.TankInput) error            { return f.err }
func (f *fakeEngine) UpdateTank(context.Context, string, models.TankInput) error { return f.err }
func (f *fakeEngine) RefillTank(_ context.Context, _ string, liters decimal.Decimal) error {
	f.refilled = liters
	return f.err
}
func (f *fakeEngine) DeleteTank(context.Context, string) error { return f.err }
func (f *fakeEngine) Allocations(string) []models.AllocationRecord {
	return []models.AllocationRecord{}
}
func (f *fakeEngine) NewDraft(operator string) *sharing.Builder { return sharing.NewBuilder(operator) }
func (f *fakeEngine) SubmitDraft(_ context.Context, draft *sharing.Builder) error {
	f.submitted = draft
	if f.err != nil {
		return f.err
	}
	_, err := draft.Request()
	return err
}
func (f *fakeEngine) UpdateAllocation(_ context.Context, rec models.AllocationRecord) error {
	f.updated = rec
	if f.err != nil {
		return f.err
	}
	return sharing.ValidateShare(rec.Product, rec.Destinations)
}
func (f *fakeEngine) DeleteAllocation(context.Context, string) error { return f.err }
func (f *fakeEngine) PreviewPriceChange(req models.PriceChangeRequest) (models.PriceChangeSet, error) {
	f.price = req
	return models.PriceChangeSet{FuelType: req.FuelType, NewPrice: req.NewPrice, Scope: req.Scope, Affected: []models.AffectedTank{}}, f.err
}
func (f *fakeEngine) ApplyPriceChange(_ context.Context, req models.PriceChangeRequest) (models.PriceChangeResult, error) {
	f.price = req
	return models.PriceChangeResult{UpdatedCount: 1}, f.err
}

func newTestEngine(engine *fakeEngine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(engine, "operator", nil)

	r := gin.New()
	r.GET("/connectivity", h.GetConnectivity)
	r.POST("/connectivity/retry", h.RetryConnectivity)
	r.GET("/stations", h.ListStations)
	r.GET("/tanks", h.ListTanks)
	r.POST("/tanks", h.CreateTank)
	r.PUT("/tanks/:id", h.UpdateTank)
	r.DELETE("/tanks/:id", h.DeleteTank)
	r.POST("/tanks/:id/refill", h.RefillTank)
	r.GET("/allocations", h.ListAllocations)
	r.POST("/allocations", h.CreateAllocation)
	r.POST("/allocations/preview", h.PreviewAllocation)
	r.PUT("/allocations/:id", h.UpdateAllocation)
	r.DELETE("/allocations/:id", h.DeleteAllocation)
	r.POST("/price-updates/preview", h.PreviewPriceChange)
	r.POST("/price-updates", h.ApplyPriceChange)
	return r
}

func serve(t *testing.T, r *gin.Engine, method, path, body string, headers ...string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", orchestrator.ErrInvalidStock, http.StatusUnprocessableEntity, "validation_error"},
		{"in progress", orchestrator.ErrSubmissionInProgress, http.StatusConflict, "submission_in_progress"},
		{"not found", orchestrator.ErrTankNotFound, http.StatusNotFound, "not_found"},
		{"api error", &stationapi.APIError{Op: "delete tank", StatusCode: http.StatusForbidden, Message: "tank in use"}, http.StatusBadGateway, "station_api_error"},
		{"unexpected", assert.AnError, http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestEngine(&fakeEngine{status: models.Connected, err: tc.err})
			status, body := serve(t, r, http.MethodDelete, "/tanks/t1", "")
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body["code"])
		})
	}

	r := newTestEngine(&fakeEngine{err: &stationapi.APIError{StatusCode: http.StatusForbidden, Message: "tank in use"}})
	_, body := serve(t, r, http.MethodDelete, "/tanks/t1", "")
	assert.Equal(t, "tank in use", body["message"])
	assert.EqualValues(t, http.StatusForbidden, body["status"])
}

func TestBadJSONIsBadRequest(t *testing.T) {
	r := newTestEngine(&fakeEngine{})
	status, body := serve(t, r, http.MethodPost, "/tanks", "{not json")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", body["code"])
}

func TestOfflineNotice(t *testing.T) {
	r := newTestEngine(&fakeEngine{status: models.Disconnected})
	status, body := serve(t, r, http.MethodPost, "/tanks", `{"name":"A","station":"Accra","fuelType":"Super","capacity":100,"currentStock":"50"}`)
	assert.Equal(t, http.StatusCreated, status)

	notice, ok := body["notice"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "info", notice["level"])

	r = newTestEngine(&fakeEngine{status: models.Connected})
	_, body = serve(t, r, http.MethodGet, "/tanks", "")
	assert.NotContains(t, body, "notice")
}

func TestRefillAcceptsNumbersAndStrings(t *testing.T) {
	engine := &fakeEngine{status: models.Connected}
	r := newTestEngine(engine)

	status, _ := serve(t, r, http.MethodPost, "/tanks/t1/refill", `{"liters":250.5}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "250.5", engine.refilled.String())

	serve(t, r, http.MethodPost, "/tanks/t1/refill", `{"liters":"1,000"}`)
	assert.Equal(t, "1000", engine.refilled.String())
}

func TestCreateAllocation(t *testing.T) {
	engine := &fakeEngine{status: models.Connected}
	r := newTestEngine(engine)

	body := `{"product":"Super","rate":"7.20","salesRate":8.5,"destinations":[
		{"stationId":"st-accra","station":"Accra","quantity":"3000"},
		{"stationId":"st-tema","station":"Tema","quantity":2000}]}`
	status, _ := serve(t, r, http.MethodPost, "/allocations", body, "X-Operator", "kofi")
	assert.Equal(t, http.StatusCreated, status)

	require.NotNil(t, engine.submitted)
	req, err := engine.submitted.Request()
	require.NoError(t, err)
	assert.Equal(t, "kofi", req.CreatedBy)
	assert.Equal(t, "5000", req.TotalQuantity.String())
	assert.Equal(t, "6500.00", req.ExpectedProfit.StringFixed(2))
}

func TestCreateAllocation_Rejections(t *testing.T) {
	r := newTestEngine(&fakeEngine{})

	dup := `{"product":"Super","destinations":[{"stationId":"a","station":"A","quantity":1},{"stationId":"a","station":"A","quantity":2}]}`
	status, body := serve(t, r, http.MethodPost, "/allocations", dup)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, sharing.ErrDuplicateDestination.Error(), body["message"])

	empty := `{"product":"Super","destinations":[{"stationId":"a","station":"A","quantity":0}]}`
	status, body = serve(t, r, http.MethodPost, "/allocations", empty)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, sharing.ErrNoPositiveQuantity.Error(), body["message"])
}

func TestPreviewAllocation(t *testing.T) {
	r := newTestEngine(&fakeEngine{})

	body := `{"product":"Diesel","rate":"8","salesRate":"9","destinations":[{"station":"Accra","quantity":"abc"},{"station":"Tema","quantity":"10"}]}`
	status, out := serve(t, r, http.MethodPost, "/allocations/preview", body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["valid"])

	totals := out["totals"].(map[string]any)
	assert.Equal(t, "10", totals["totalQty"])
	assert.Equal(t, "80.00", totals["amountCost"])
	assert.Equal(t, "10.00", totals["expectedProfit"])

	entries := out["entries"].([]any)
	assert.Len(t, entries, 2)

	_, out = serve(t, r, http.MethodPost, "/allocations/preview", `{"destinations":[]}`)
	assert.Equal(t, false, out["valid"])
	assert.Equal(t, sharing.ErrProductRequired.Error(), out["message"])
}

func TestUpdateAllocationMapsRecord(t *testing.T) {
	engine := &fakeEngine{status: models.Connected}
	r := newTestEngine(engine)

	status, _ := serve(t, r, http.MethodPut, "/allocations/s1", `{"product":"Super","rate":7,"destinations":[{"station":"Tema","quantity":"5"}]}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "s1", engine.updated.ID)
	assert.Empty(t, engine.updated.Status)
	assert.Equal(t, "5", engine.updated.Destinations[0].Quantity.String())

	serve(t, r, http.MethodPut, "/allocations/s1", `{"product":"Super","status":"approved?","destinations":[]}`)
	assert.Equal(t, models.AllocationPending, engine.updated.Status)
}

func TestUpdateAllocation_RejectsRepeatedStation(t *testing.T) {
	r := newTestEngine(&fakeEngine{status: models.Connected})

	dup := `{"product":"Super","destinations":[{"stationId":"st-tema","station":"Tema","quantity":100},{"stationId":"st-tema","station":"Tema","quantity":100}]}`
	status, body := serve(t, r, http.MethodPut, "/allocations/s1", dup)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "validation_error", body["code"])
	assert.Equal(t, sharing.ErrDuplicateDestination.Error(), body["message"])
}

func TestPriceRequests(t *testing.T) {
	engine := &fakeEngine{
		status: models.Connected,
		tanks:  []models.Tank{{ID: "t1", FuelType: "Super"}},
	}
	r := newTestEngine(engine)

	status, out := serve(t, r, http.MethodPost, "/price-updates/preview", `{"fuelType":"Super","newPrice":"9.10","selectedTankId":"t1"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.ScopeSelected, engine.price.Scope)
	assert.Equal(t, "operator", engine.price.UpdatedBy)
	assert.Len(t, out["availableScopes"], 3)

	_, out = serve(t, r, http.MethodPost, "/price-updates/preview", `{"fuelType":"Super","newPrice":"9.10"}`)
	assert.Equal(t, models.ScopeAll, engine.price.Scope)
	assert.Len(t, out["availableScopes"], 1)

	status, _ = serve(t, r, http.MethodPost, "/price-updates", `{"fuelType":"Super","newPrice":9,"scope":"current_station","selectedTankId":"t1","reason":"market"}`, "X-Operator", "ama")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.ScopeStation, engine.price.Scope)
	assert.Equal(t, "ama", engine.price.UpdatedBy)
	assert.Equal(t, "market", engine.price.Reason)

	status, out = serve(t, r, http.MethodPost, "/price-updates", `{"fuelType":"Super","newPrice":9,"scope":"everywhere"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, out["message"], pricing.ErrUnknownScope.Error())
}

func TestConnectivityAndStations(t *testing.T) {
	r := newTestEngine(&fakeEngine{status: models.Connecting})

	status, out := serve(t, r, http.MethodGet, "/connectivity", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "connecting", out["connectivity"].(map[string]any)["status"])

	status, out = serve(t, r, http.MethodGet, "/stations", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, out["stations"], 1)

	status, _ = serve(t, r, http.MethodPost, "/connectivity/retry", "")
	assert.Equal(t, http.StatusOK, status)
}
