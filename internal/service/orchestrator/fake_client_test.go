package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mamadbah2/fuelshare/pkg/clients/stationapi"
)

var errRefused = &stationapi.TransportError{Op: "test", Err: errors.New("connection refused")}

// fakeClient is an in-memory station API. Successful mutations change its
// lists so a refetch observes them.
type fakeClient struct {
	mu sync.Mutex

	healthErr error
	listErr   error
	mutateErr error

	tanks  []stationapi.TankRecord
	supply []stationapi.SupplyRecord

	calls      []string
	priceReqs  []stationapi.PriceUpdateRequest
	nextID     int
	blockTanks chan struct{}
	entered    chan struct{}
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) mutationErr() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mutateErr
}

func (f *fakeClient) Health(context.Context) error {
	f.record("health")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.healthErr
}

func (f *fakeClient) ListTanks(context.Context, string) ([]stationapi.TankRecord, error) {
	f.record("list tanks")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]stationapi.TankRecord(nil), f.tanks...), nil
}

func (f *fakeClient) CreateTank(_ context.Context, tank stationapi.TankRecord) error {
	f.record("create tank")
	if err := f.mutationErr(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	tank.ID = fmt.Sprintf("remote-%d", f.nextID)
	f.tanks = append(f.tanks, tank)
	return nil
}

func (f *fakeClient) UpdateTank(_ context.Context, id string, tank stationapi.TankRecord) error {
	f.record("update tank")
	if f.blockTanks != nil {
		f.entered <- struct{}{}
		<-f.blockTanks
	}
	if err := f.mutationErr(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tanks {
		if f.tanks[i].ID == id {
			tank.ID = id
			f.tanks[i] = tank
		}
	}
	return nil
}

func (f *fakeClient) DeleteTank(_ context.Context, id string) error {
	f.record("delete tank")
	if err := f.mutationErr(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tanks {
		if f.tanks[i].ID == id {
			f.tanks = append(f.tanks[:i], f.tanks[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeClient) ListSupply(context.Context, string) ([]stationapi.SupplyRecord, error) {
	f.record("list supply")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]stationapi.SupplyRecord(nil), f.supply...), nil
}

func (f *fakeClient) CreateSupply(_ context.Context, rows []stationapi.SupplyRecord) error {
	f.record("create supply")
	if err := f.mutationErr(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range rows {
		f.nextID++
		row.ID = fmt.Sprintf("remote-%d", f.nextID)
		f.supply = append(f.supply, row)
	}
	return nil
}

func (f *fakeClient) UpdateSupply(_ context.Context, id string, rec stationapi.SupplyRecord) error {
	f.record("update supply")
	if err := f.mutationErr(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.supply {
		if f.supply[i].ID == id {
			f.supply[i] = rec
		}
	}
	return nil
}

func (f *fakeClient) DeleteSupply(_ context.Context, id string) error {
	f.record("delete supply")
	if err := f.mutationErr(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.supply {
		if f.supply[i].ID == id {
			f.supply = append(f.supply[:i], f.supply[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeClient) SubmitPriceUpdate(_ context.Context, req stationapi.PriceUpdateRequest) (*stationapi.PriceUpdateResponse, error) {
	f.record("submit price update")
	if err := f.mutationErr(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.priceReqs = append(f.priceReqs, req)

	affected := make(map[string]bool, len(req.AffectedTankIDs))
	for _, id := range req.AffectedTankIDs {
		affected[id] = true
	}
	for i := range f.tanks {
		if affected[f.tanks[i].ID] {
			f.tanks[i].PricePerLiter = req.NewPrice
		}
	}
	return &stationapi.PriceUpdateResponse{Success: true, UpdatedCount: len(req.AffectedTankIDs), AffectedTanks: req.AffectedTankIDs}, nil
}
