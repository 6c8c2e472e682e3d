package mockdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/fuelshare/internal/domain/models"
)

func TestDefault(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	require.Len(t, ds.Tanks, 6)
	require.Len(t, ds.Allocations, 2)

	first := ds.Tanks[0]
	assert.Equal(t, "tank-001", first.ID)
	assert.Equal(t, "st-accra", first.StationID)
	assert.Equal(t, "8.5", first.PricePerLiter.String())
	assert.Equal(t, models.TankGood, first.Status)

	// 2600 / 15000 is below the critical threshold.
	assert.Equal(t, models.TankCritical, ds.Tanks[2].Status)

	share := ds.Allocations[0]
	assert.Equal(t, "2025-01-15", share.Date)
	assert.Equal(t, models.AllocationApproved, share.Status)
	assert.Equal(t, "5000", share.TotalQuantity.String())
	assert.Equal(t, "36000.00", share.TotalCost.StringFixed(2))
	assert.Equal(t, "42500.00", share.TotalSales.StringFixed(2))
	assert.Equal(t, "6500.00", share.ExpectedProfit.StringFixed(2))
	assert.False(t, share.CreatedAt.IsZero())
}

func TestParse_StationIDDefaultsToName(t *testing.T) {
	ds, err := Parse([]byte(`
tanks:
  - id: t1
    name: North
    station: Takoradi
    fuelType: Diesel
    capacity: "1000"
    currentStock: "not-a-number"
    pricePerLiter: "9"
`))
	require.NoError(t, err)
	require.Len(t, ds.Tanks, 1)
	assert.Equal(t, "Takoradi", ds.Tanks[0].StationID)
	assert.True(t, ds.Tanks[0].CurrentStock.IsZero())
	assert.Equal(t, models.TankCritical, ds.Tanks[0].Status)
	assert.Empty(t, ds.Allocations)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("tanks: [unclosed"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tanks:\n  - id: only\n    station: A\n"), 0o600))

	ds, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ds.Tanks, 1)
	assert.Equal(t, "only", ds.Tanks[0].ID)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
