package orchestrator

import (
	"sort"

	"github.com/mamadbah2/fuelshare/internal/domain/models"
	"github.com/mamadbah2/fuelshare/internal/service/sharing"
)

func (o *Orchestrator) currentTanks() []models.Tank {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.phase == phaseOffline {
		return o.mock.Tanks()
	}
	out := make([]models.Tank, len(o.tanks))
	copy(out, o.tanks)
	return out
}

func (o *Orchestrator) currentAllocations() []models.AllocationRecord {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.phase == phaseOffline {
		return o.mock.Allocations()
	}
	out := make([]models.AllocationRecord, len(o.allocations))
	for i, rec := range o.allocations {
		destinations := make([]models.Destination, len(rec.Destinations))
		copy(destinations, rec.Destinations)
		rec.Destinations = destinations
		out[i] = rec
	}
	return out
}

// Tanks lists tanks, optionally restricted to a station id or name.
func (o *Orchestrator) Tanks(station string) []models.Tank {
	tanks := o.currentTanks()
	if station == "" {
		return tanks
	}
	out := make([]models.Tank, 0, len(tanks))
	for _, t := range tanks {
		if t.StationKey() == station || t.Station == station {
			out = append(out, t)
		}
	}
	return out
}

// Tank looks a tank up by id.
func (o *Orchestrator) Tank(id string) (models.Tank, error) {
	for _, t := range o.currentTanks() {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Tank{}, ErrTankNotFound
}

// Allocations lists allocation records, optionally restricted to those with a
// destination at the given station id or name.
func (o *Orchestrator) Allocations(station string) []models.AllocationRecord {
	all := o.currentAllocations()
	if station == "" {
		return all
	}
	out := make([]models.AllocationRecord, 0, len(all))
	for _, rec := range all {
		if rec.HasStation(station) {
			out = append(out, rec)
		}
	}
	return out
}

// Allocation looks an allocation record up by id.
func (o *Orchestrator) Allocation(id string) (models.AllocationRecord, error) {
	for _, rec := range o.currentAllocations() {
		if rec.ID == id {
			return rec, nil
		}
	}
	return models.AllocationRecord{}, ErrAllocationNotFound
}

// Stations derives the station catalog from the tank list, ordered by name.
func (o *Orchestrator) Stations() []models.Station {
	seen := make(map[string]bool)
	var stations []models.Station
	for _, t := range o.currentTanks() {
		key := t.StationKey()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		stations = append(stations, models.Station{ID: key, Name: t.Station})
	}

	sort.Slice(stations, func(i, j int) bool {
		if stations[i].Name != stations[j].Name {
			return stations[i].Name < stations[j].Name
		}
		return stations[i].ID < stations[j].ID
	})
	return stations
}

// NewDraft starts an empty share draft on behalf of operator.
func (o *Orchestrator) NewDraft(operator string) *sharing.Builder {
	return sharing.NewBuilder(operator)
}
