package mockdata

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/fuelshare/internal/domain/models"
	"github.com/mamadbah2/fuelshare/internal/service/records"
)

var (
	// ErrTankNotFound indicates an unknown tank id.
	ErrTankNotFound = errors.New("tank not found")
	// ErrAllocationNotFound indicates an unknown allocation id.
	ErrAllocationNotFound = errors.New("allocation not found")
)

// Store holds the in-memory tanks and allocation records used in offline mode.
type Store struct {
	mu          sync.RWMutex
	tanks       []models.Tank
	allocations []models.AllocationRecord
	newID       func() string
	now         func() time.Time
}

// NewStore creates a store seeded with ds.
func NewStore(ds Dataset) *Store {
	s := &Store{
		newID: uuid.NewString,
		now:   time.Now,
	}
	s.Reset(ds)
	return s
}

// Reset replaces both collections with copies of ds.
func (s *Store) Reset(ds Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tanks = cloneTanks(ds.Tanks)
	s.allocations = cloneAllocations(ds.Allocations)
}

// Snapshot returns copies of both collections.
func (s *Store) Snapshot() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Dataset{Tanks: cloneTanks(s.tanks), Allocations: cloneAllocations(s.allocations)}
}

// Tanks returns a copy of the tank collection.
func (s *Store) Tanks() []models.Tank {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTanks(s.tanks)
}

// Allocations returns a copy of the allocation collection.
func (s *Store) Allocations() []models.AllocationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAllocations(s.allocations)
}

// AddTank appends a tank built from in.
func (s *Store) AddTank(in models.TankInput) models.Tank {
	s.mu.Lock()
	defer s.mu.Unlock()

	tank := in.Apply(models.Tank{ID: "mock-" + s.newID()})
	if tank.StationID == "" {
		tank.StationID = tank.Station
	}
	s.tanks = append(s.tanks, tank)
	return tank
}

// PutTank replaces the tank with the same id.
func (s *Store) PutTank(tank models.Tank) (models.Tank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tanks {
		if s.tanks[i].ID == tank.ID {
			s.tanks[i] = tank.WithStatus()
			return s.tanks[i], nil
		}
	}
	return models.Tank{}, ErrTankNotFound
}

// DeleteTank removes a tank.
func (s *Store) DeleteTank(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tanks {
		if s.tanks[i].ID == id {
			s.tanks = append(s.tanks[:i], s.tanks[i+1:]...)
			return nil
		}
	}
	return ErrTankNotFound
}

// ApplyPrices sets the new price on every affected tank and returns how many changed.
func (s *Store) ApplyPrices(set models.PriceChangeSet) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	affected := make(map[string]bool, len(set.Affected))
	for _, a := range set.Affected {
		affected[a.TankID] = true
	}

	updated := 0
	for i := range s.tanks {
		if affected[s.tanks[i].ID] {
			s.tanks[i].PricePerLiter = set.NewPrice
			updated++
		}
	}
	return updated
}

// AddAllocation stores a share request as a single pending record.
func (s *Store) AddAllocation(req models.ShareRequest) models.AllocationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	destinations := make([]models.Destination, len(req.Destinations))
	copy(destinations, req.Destinations)

	date := req.Date
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	rec := records.WithTotals(models.AllocationRecord{
		ID:           "mock-" + s.newID(),
		Date:         records.NormalizeDate(date),
		Product:      req.Product,
		Destinations: destinations,
		Rate:         req.Rate,
		SalesRate:    req.SalesRate,
		Status:       models.AllocationPending,
		CreatedBy:    req.CreatedBy,
		CreatedAt:    s.now().UTC(),
	})
	s.allocations = append(s.allocations, rec)
	return rec
}

// PutAllocation replaces the record with the same id, recomputing its totals.
func (s *Store) PutAllocation(rec models.AllocationRecord) (models.AllocationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.allocations {
		if s.allocations[i].ID == rec.ID {
			rec = records.WithTotals(rec)
			rec.Destinations = cloneDestinations(rec.Destinations)
			s.allocations[i] = rec
			return rec, nil
		}
	}
	return models.AllocationRecord{}, ErrAllocationNotFound
}

// DeleteAllocation removes a record.
func (s *Store) DeleteAllocation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.allocations {
		if s.allocations[i].ID == id {
			s.allocations = append(s.allocations[:i], s.allocations[i+1:]...)
			return nil
		}
	}
	return ErrAllocationNotFound
}

func cloneTanks(in []models.Tank) []models.Tank {
	out := make([]models.Tank, len(in))
	copy(out, in)
	return out
}

func cloneAllocations(in []models.AllocationRecord) []models.AllocationRecord {
	out := make([]models.AllocationRecord, len(in))
	for i, rec := range in {
		rec.Destinations = cloneDestinations(rec.Destinations)
		out[i] = rec
	}
	return out
}

func cloneDestinations(in []models.Destination) []models.Destination {
	out := make([]models.Destination, len(in))
	copy(out, in)
	return out
}
