package scheduler

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/fuelshare/internal/config"
	"github.com/mamadbah2/fuelshare/internal/domain/models"
	"github.com/mamadbah2/fuelshare/internal/service/reporting"
)

type source struct{}

func (source) Tanks(string) []models.Tank {
	return []models.Tank{{Name: "T1", Station: "Tema", FuelType: "Super", Capacity: decimal.NewFromInt(100), CurrentStock: decimal.NewFromInt(5)}}
}

func (source) Connectivity() models.ConnectivityState {
	return models.ConnectivityState{Status: models.Connected}
}

type recorder struct{ saved []models.StockSnapshot }

func (r *recorder) SaveStockSnapshot(_ context.Context, s models.StockSnapshot) error {
	r.saved = append(r.saved, s)
	return nil
}

func TestNewScheduler_BadTimezone(t *testing.T) {
	_, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 * * * *", Timezone: "Mars/Olympus"}, nil, nil)
	assert.Error(t, err)
}

func TestStart_BadSchedule(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "not a cron", Timezone: "UTC"}, nil, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	svc := reporting.NewService(source{}, &recorder{}, nil)
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 * * * *", Timezone: "UTC"}, svc, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

func TestTakeSnapshot(t *testing.T) {
	repo := &recorder{}
	svc := reporting.NewService(source{}, repo, nil)
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 * * * *", Timezone: "UTC"}, svc, nil)
	require.NoError(t, err)

	s.takeSnapshot()

	require.Len(t, repo.saved, 1)
	assert.Equal(t, []string{"T1 @ Tema"}, repo.saved[0].LowStock)
}
