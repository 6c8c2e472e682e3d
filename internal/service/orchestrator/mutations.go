package orchestrator

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/fuelshare/internal/domain/models"
	"github.com/mamadbah2/fuelshare/internal/service/pricing"
	"github.com/mamadbah2/fuelshare/internal/service/records"
	"github.com/mamadbah2/fuelshare/internal/service/sharing"
	"github.com/mamadbah2/fuelshare/pkg/clients/stationapi"
)

func validateTank(t models.Tank) error {
	if t.Station == "" || t.FuelType == "" {
		return ErrTankIncomplete
	}
	if t.CurrentStock.IsNegative() || t.CurrentStock.GreaterThan(t.Capacity) {
		return ErrInvalidStock
	}
	return nil
}

// AddTank creates a tank.
func (o *Orchestrator) AddTank(ctx context.Context, in models.TankInput) error {
	tank := in.Apply(models.Tank{})
	if err := validateTank(tank); err != nil {
		return err
	}

	release, err := o.acquire(ResourceTanks)
	if err != nil {
		return err
	}
	defer release()

	return o.apply(ctx, ResourceTanks, "add tank",
		func(ctx context.Context) error {
			return o.client.CreateTank(ctx, records.TankToWire(tank))
		},
		func() error {
			o.mock.AddTank(in)
			return nil
		})
}

// UpdateTank replaces the editable fields of a tank.
func (o *Orchestrator) UpdateTank(ctx context.Context, id string, in models.TankInput) error {
	release, err := o.acquire(ResourceTanks)
	if err != nil {
		return err
	}
	defer release()

	current, err := o.Tank(id)
	if err != nil {
		return err
	}
	return o.putTank(ctx, "update tank", in.Apply(current))
}

// RefillTank adds liters to the current stock of a tank.
func (o *Orchestrator) RefillTank(ctx context.Context, id string, liters decimal.Decimal) error {
	if !liters.IsPositive() {
		return ErrInvalidRefill
	}

	release, err := o.acquire(ResourceTanks)
	if err != nil {
		return err
	}
	defer release()

	current, err := o.Tank(id)
	if err != nil {
		return err
	}
	current.CurrentStock = current.CurrentStock.Add(liters)
	return o.putTank(ctx, "refill tank", current.WithStatus())
}

func (o *Orchestrator) putTank(ctx context.Context, op string, tank models.Tank) error {
	if err := validateTank(tank); err != nil {
		return err
	}
	return o.apply(ctx, ResourceTanks, op,
		func(ctx context.Context) error {
			return o.client.UpdateTank(ctx, tank.ID, records.TankToWire(tank))
		},
		func() error {
			_, err := o.mock.PutTank(tank)
			return err
		})
}

// DeleteTank removes a tank.
func (o *Orchestrator) DeleteTank(ctx context.Context, id string) error {
	release, err := o.acquire(ResourceTanks)
	if err != nil {
		return err
	}
	defer release()

	return o.apply(ctx, ResourceTanks, "delete tank",
		func(ctx context.Context) error {
			return o.client.DeleteTank(ctx, id)
		},
		func() error {
			return o.mock.DeleteTank(id)
		})
}

// SubmitDraft validates a share draft and submits it.
func (o *Orchestrator) SubmitDraft(ctx context.Context, draft *sharing.Builder) error {
	if draft.HasNegativeQuantity() {
		o.logger.Warn("share draft contains a negative quantity")
	}
	req, err := draft.Request()
	if err != nil {
		return err
	}
	return o.ShareProduct(ctx, req)
}

// ShareProduct records a share of product across its destinations.
func (o *Orchestrator) ShareProduct(ctx context.Context, req models.ShareRequest) error {
	if err := sharing.ValidateShare(req.Product, req.Destinations); err != nil {
		return err
	}
	if req.Date == "" {
		req.Date = o.now().Format("2006-01-02")
	}

	release, err := o.acquire(ResourceAllocations)
	if err != nil {
		return err
	}
	defer release()

	return o.apply(ctx, ResourceAllocations, "share product",
		func(ctx context.Context) error {
			return o.client.CreateSupply(ctx, records.Flatten(req, o.now()))
		},
		func() error {
			o.mock.AddAllocation(req)
			return nil
		})
}

// UpdateAllocation replaces an allocation record. Totals are recomputed from
// its destinations and rates.
func (o *Orchestrator) UpdateAllocation(ctx context.Context, rec models.AllocationRecord) error {
	if err := sharing.ValidateShare(rec.Product, rec.Destinations); err != nil {
		return err
	}

	release, err := o.acquire(ResourceAllocations)
	if err != nil {
		return err
	}
	defer release()

	existing, err := o.Allocation(rec.ID)
	if err != nil {
		return err
	}
	if existing.Status != models.AllocationPending {
		o.logger.Warn("editing a non-pending allocation",
			zap.String("id", existing.ID),
			zap.String("status", string(existing.Status)))
	}
	if rec.CreatedBy == "" {
		rec.CreatedBy = existing.CreatedBy
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = existing.CreatedAt
	}
	if rec.Status == "" {
		rec.Status = existing.Status
	}
	rec.Date = records.NormalizeDate(rec.Date)
	rec = records.WithTotals(rec)

	return o.apply(ctx, ResourceAllocations, "update allocation",
		func(ctx context.Context) error {
			return o.client.UpdateSupply(ctx, rec.ID, records.ToWire(rec))
		},
		func() error {
			_, err := o.mock.PutAllocation(rec)
			return err
		})
}

// DeleteAllocation removes an allocation record.
func (o *Orchestrator) DeleteAllocation(ctx context.Context, id string) error {
	release, err := o.acquire(ResourceAllocations)
	if err != nil {
		return err
	}
	defer release()

	return o.apply(ctx, ResourceAllocations, "delete allocation",
		func(ctx context.Context) error {
			return o.client.DeleteSupply(ctx, id)
		},
		func() error {
			return o.mock.DeleteAllocation(id)
		})
}

func (o *Orchestrator) resolverContext(selectedID string) (pricing.Context, error) {
	ctx := pricing.Context{Tanks: o.currentTanks()}
	if selectedID == "" {
		return ctx, nil
	}
	for i := range ctx.Tanks {
		if ctx.Tanks[i].ID == selectedID {
			selected := ctx.Tanks[i]
			ctx.Selected = &selected
			return ctx, nil
		}
	}
	return pricing.Context{}, ErrTankNotFound
}

// PreviewPriceChange resolves the tanks a price change would touch.
func (o *Orchestrator) PreviewPriceChange(req models.PriceChangeRequest) (models.PriceChangeSet, error) {
	rctx, err := o.resolverContext(req.SelectedTankID)
	if err != nil {
		return models.PriceChangeSet{}, err
	}
	return pricing.Preview(req.FuelType, req.NewPrice, req.Scope, rctx), nil
}

// ApplyPriceChange commits a price change. The affected set is resolved again
// against the current tanks so a stale preview is never committed.
func (o *Orchestrator) ApplyPriceChange(ctx context.Context, req models.PriceChangeRequest) (models.PriceChangeResult, error) {
	release, err := o.acquire(ResourceTanks)
	if err != nil {
		return models.PriceChangeResult{}, err
	}
	defer release()

	rctx, err := o.resolverContext(req.SelectedTankID)
	if err != nil {
		return models.PriceChangeResult{}, err
	}
	set := pricing.Preview(req.FuelType, req.NewPrice, req.Scope, rctx)
	if err := pricing.Confirm(set, req.Reason); err != nil {
		return models.PriceChangeResult{}, err
	}

	effectiveDate := records.NormalizeDate(req.EffectiveDate)
	if effectiveDate == "" {
		effectiveDate = o.now().Format("2006-01-02")
	}

	payload := stationapi.PriceUpdateRequest{
		UpdateScope:        pricing.WireScope(set.Scope),
		TargetStation:      affectedStations(set),
		FuelType:           set.FuelType,
		NewPrice:           stationapi.NumberOf(set.NewPrice),
		EffectiveDate:      effectiveDate,
		Reason:             req.Reason,
		UpdatedBy:          req.UpdatedBy,
		AffectedTankIDs:    set.TankIDs(),
		TotalAffectedTanks: len(set.Affected),
	}
	if set.Scope == models.ScopeSelected && rctx.Selected != nil {
		id := rctx.Selected.ID
		payload.TargetTankID = &id
	}

	result := models.PriceChangeResult{ChangeSet: set}
	submitted := false
	err = o.apply(ctx, ResourceTanks, "apply price change",
		func(ctx context.Context) error {
			resp, err := o.client.SubmitPriceUpdate(ctx, payload)
			if err != nil {
				return err
			}
			submitted = true
			result.UpdatedCount = resp.UpdatedCount
			return nil
		},
		func() error {
			n := o.mock.ApplyPrices(set)
			if !submitted {
				result.UpdatedCount = n
				result.Offline = true
			}
			return nil
		})
	if err != nil {
		return models.PriceChangeResult{}, err
	}

	o.recordAudit(ctx, req, result)
	return result, nil
}

func (o *Orchestrator) recordAudit(ctx context.Context, req models.PriceChangeRequest, result models.PriceChangeResult) {
	if o.audit == nil {
		return
	}
	audit := models.PriceChangeAudit{
		CommittedAt:  o.now().UTC(),
		ChangeSet:    result.ChangeSet,
		Reason:       req.Reason,
		UpdatedBy:    req.UpdatedBy,
		UpdatedCount: result.UpdatedCount,
		Offline:      result.Offline,
	}
	if err := o.audit.SavePriceChange(ctx, audit); err != nil {
		o.logger.Error("failed to record price change audit", zap.Error(fmt.Errorf("save audit: %w", err)))
	}
}

func affectedStations(set models.PriceChangeSet) []string {
	seen := make(map[string]bool, len(set.Affected))
	stations := make([]string, 0, len(set.Affected))
	for _, a := range set.Affected {
		if seen[a.Station] {
			continue
		}
		seen[a.Station] = true
		stations = append(stations, a.Station)
	}
	return stations
}
