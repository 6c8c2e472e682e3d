package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/fuelshare/internal/domain/models"
)

const timestampLayout = "2006-01-02 15:04"

// TankSource provides the inventory a snapshot is taken from.
type TankSource interface {
	Tanks(station string) []models.Tank
	Connectivity() models.ConnectivityState
}

// SnapshotRepository persists stock snapshots.
type SnapshotRepository interface {
	SaveStockSnapshot(ctx context.Context, snapshot models.StockSnapshot) error
}

// Service builds stock snapshots and low-stock digests.
type Service struct {
	source TankSource
	repo   SnapshotRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a new reporting service instance. repository may be nil, in
// which case snapshots are only logged.
func NewService(source TankSource, repository SnapshotRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, repo: repository, now: time.Now, logger: logger}
}

// BuildSnapshot aggregates the current tanks per fuel type and status.
func (s *Service) BuildSnapshot() models.StockSnapshot {
	source := "remote"
	if s.source.Connectivity().Status != models.Connected {
		source = "mock"
	}

	snapshot := models.StockSnapshot{
		TakenAt:  s.now().UTC(),
		Source:   source,
		Fuels:    []models.FuelTotals{},
		Statuses: map[models.TankStatus]int{},
		LowStock: []string{},
	}

	byFuel := make(map[string]*models.FuelTotals)
	for _, tank := range s.source.Tanks("") {
		totals, ok := byFuel[tank.FuelType]
		if !ok {
			totals = &models.FuelTotals{FuelType: tank.FuelType, Capacity: decimal.Zero, Stock: decimal.Zero}
			byFuel[tank.FuelType] = totals
		}
		totals.Tanks++
		totals.Capacity = totals.Capacity.Add(tank.Capacity)
		totals.Stock = totals.Stock.Add(tank.CurrentStock)

		status := models.StatusFor(tank.CurrentStock, tank.Capacity)
		snapshot.Statuses[status]++
		if status != models.TankGood {
			snapshot.LowStock = append(snapshot.LowStock, fmt.Sprintf("%s @ %s", tank.Name, tank.Station))
		}
	}

	for _, totals := range byFuel {
		snapshot.Fuels = append(snapshot.Fuels, *totals)
	}
	sort.Slice(snapshot.Fuels, func(i, j int) bool {
		return snapshot.Fuels[i].FuelType < snapshot.Fuels[j].FuelType
	})

	return snapshot
}

// TakeSnapshot builds a snapshot and stores it when a repository is configured.
func (s *Service) TakeSnapshot(ctx context.Context) (models.StockSnapshot, error) {
	snapshot := s.BuildSnapshot()
	if s.repo == nil {
		return snapshot, nil
	}
	if err := s.repo.SaveStockSnapshot(ctx, snapshot); err != nil {
		return snapshot, fmt.Errorf("save stock snapshot: %w", err)
	}
	s.logger.Debug("stock snapshot stored", zap.Time("taken_at", snapshot.TakenAt))
	return snapshot, nil
}

// Summary renders a snapshot as a one-line digest.
func Summary(snapshot models.StockSnapshot) string {
	if len(snapshot.Fuels) == 0 {
		return fmt.Sprintf("Stock snapshot (%s, %s): no tanks yet.", snapshot.TakenAt.Format(timestampLayout), snapshot.Source)
	}

	parts := make([]string, 0, len(snapshot.Fuels))
	for _, f := range snapshot.Fuels {
		parts = append(parts, fmt.Sprintf("%s %s/%s L across %d tanks", f.FuelType, f.Stock.String(), f.Capacity.String(), f.Tanks))
	}

	line := fmt.Sprintf("Stock snapshot (%s, %s): %s.", snapshot.TakenAt.Format(timestampLayout), snapshot.Source, strings.Join(parts, "; "))
	if len(snapshot.LowStock) > 0 {
		line += " Low stock: " + strings.Join(snapshot.LowStock, ", ") + "."
	}
	return line
}
