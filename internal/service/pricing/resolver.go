// Package pricing resolves which tanks a price change touches and how much each
// tank's price moves.
package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/fuelshare/internal/domain/models"
)

var (
	// ErrNoAffectedTanks indicates the change matches no tank.
	ErrNoAffectedTanks = errors.New("no tanks match the price change")
	// ErrNonPositivePrice indicates a new price of zero or less.
	ErrNonPositivePrice = errors.New("new price must be greater than zero")
	// ErrReasonRequired indicates a missing change reason.
	ErrReasonRequired = errors.New("a reason is required for price changes")
	// ErrUnknownScope indicates an unrecognized scope value.
	ErrUnknownScope = errors.New("unknown price update scope")
)

var hundred = decimal.NewFromInt(100)

// Context carries the inventory a price change is resolved against.
type Context struct {
	Selected *models.Tank
	Tanks    []models.Tank
}

// ParseScope accepts both the short and the wire spelling of a scope.
func ParseScope(s string) (models.PriceScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "selected", "selected_tank", "single", "tank":
		return models.ScopeSelected, nil
	case "station", "current_station", "station_tanks":
		return models.ScopeStation, nil
	case "all", "all_stations":
		return models.ScopeAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
	}
}

// WireScope is the scope spelling expected by the station API.
func WireScope(scope models.PriceScope) string {
	switch scope {
	case models.ScopeSelected:
		return "selected_tank"
	case models.ScopeStation:
		return "current_station"
	default:
		return "all_stations"
	}
}

// AvailableScopes lists the scopes that can be offered for the current selection.
func AvailableScopes(selected *models.Tank) []models.PriceScope {
	if selected == nil {
		return []models.PriceScope{models.ScopeAll}
	}
	return []models.PriceScope{models.ScopeSelected, models.ScopeStation, models.ScopeAll}
}

// Resolve returns the tanks affected by setting fuelType to newPrice within scope.
// A fuel type that does not match the selection yields an empty result, not an error.
func Resolve(fuelType string, newPrice decimal.Decimal, scope models.PriceScope, ctx Context) []models.AffectedTank {
	var matched []models.Tank

	switch scope {
	case models.ScopeSelected:
		if ctx.Selected != nil && ctx.Selected.FuelType == fuelType {
			matched = append(matched, *ctx.Selected)
		}
	case models.ScopeStation:
		if ctx.Selected == nil {
			return []models.AffectedTank{}
		}
		station := ctx.Selected.StationKey()
		for _, t := range ctx.Tanks {
			if t.StationKey() == station && t.FuelType == fuelType {
				matched = append(matched, t)
			}
		}
	case models.ScopeAll:
		for _, t := range ctx.Tanks {
			if t.FuelType == fuelType {
				matched = append(matched, t)
			}
		}
	}

	affected := make([]models.AffectedTank, 0, len(matched))
	for _, t := range matched {
		affected = append(affected, affectedFor(t, newPrice))
	}
	return affected
}

// Preview builds the full change set for the given inputs.
func Preview(fuelType string, newPrice decimal.Decimal, scope models.PriceScope, ctx Context) models.PriceChangeSet {
	return models.PriceChangeSet{
		FuelType: fuelType,
		NewPrice: newPrice,
		Scope:    scope,
		Affected: Resolve(fuelType, newPrice, scope, ctx),
	}
}

// Confirm checks that a change set may be committed.
func Confirm(set models.PriceChangeSet, reason string) error {
	if len(set.Affected) == 0 {
		return ErrNoAffectedTanks
	}
	if !set.NewPrice.IsPositive() {
		return ErrNonPositivePrice
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	return nil
}

// A zero current price reports a 0% change rather than an undefined ratio.
func affectedFor(t models.Tank, newPrice decimal.Decimal) models.AffectedTank {
	delta := newPrice.Sub(t.PricePerLiter)
	percent := decimal.Zero
	if !t.PricePerLiter.IsZero() {
		percent = delta.Div(t.PricePerLiter).Mul(hundred)
	}
	return models.AffectedTank{
		TankID:        t.ID,
		TankName:      t.Name,
		Station:       t.Station,
		StationID:     t.StationKey(),
		CurrentPrice:  t.PricePerLiter,
		NewPrice:      newPrice,
		Delta:         delta,
		PercentChange: percent,
	}
}
