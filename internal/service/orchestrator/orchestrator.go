// Package orchestrator keeps tanks and allocation records in sync with the
// remote station API and falls back to local mock collections when the API
// cannot be reached.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/fuelshare/internal/domain/models"
	"github.com/mamadbah2/fuelshare/internal/service/mockdata"
	"github.com/mamadbah2/fuelshare/internal/service/records"
	"github.com/mamadbah2/fuelshare/pkg/clients/stationapi"
)

type phase int

const (
	phaseUninitialized phase = iota
	phaseProbing
	phaseSynced
	phaseOffline
)

func (p phase) connectivity() models.Connectivity {
	switch p {
	case phaseSynced:
		return models.Connected
	case phaseOffline:
		return models.Disconnected
	default:
		return models.Connecting
	}
}

// Resource names a collection owned by the orchestrator.
type Resource string

const (
	ResourceTanks        Resource = "tanks"
	ResourceAllocations  Resource = "allocations"
	ResourceConnectivity Resource = "connectivity"
)

// Event notifies subscribers that a resource changed.
type Event struct {
	Resource     Resource
	Connectivity models.Connectivity
}

// AuditSink records committed price changes.
type AuditSink interface {
	SavePriceChange(ctx context.Context, audit models.PriceChangeAudit) error
}

// Options configures an Orchestrator.
type Options struct {
	// Fallback is used to seed the mock collections when nothing was ever fetched.
	Fallback mockdata.Dataset
	Audit    AuditSink
	Logger   *zap.Logger
}

// Orchestrator owns the canonical tank and allocation lists.
type Orchestrator struct {
	client   stationapi.Client
	mock     *mockdata.Store
	fallback mockdata.Dataset
	audit    AuditSink
	logger   *zap.Logger
	now      func() time.Time

	mu          sync.RWMutex
	phase       phase
	lastProbeAt time.Time
	lastError   string
	fetched     bool
	tanks       []models.Tank
	allocations []models.AllocationRecord

	gateMu   sync.Mutex
	inflight map[Resource]bool

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(Event)
}

// New creates an orchestrator in the connecting state. Call Start to probe.
func New(client stationapi.Client, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Orchestrator{
		client:   client,
		mock:     mockdata.NewStore(mockdata.Dataset{}),
		fallback: opts.Fallback,
		audit:    opts.Audit,
		logger:   logger,
		now:      time.Now,
		inflight: make(map[Resource]bool),
		subs:     make(map[int]func(Event)),
	}
}

// Start probes the station API. On success both resources are fetched; on
// failure the orchestrator goes offline and serves the mock dataset.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	o.phase = phaseProbing
	o.mu.Unlock()
	o.emit(Event{Resource: ResourceConnectivity, Connectivity: models.Connecting})

	return o.connect(ctx)
}

// Retry re-probes the station API. Success discards local edits in favour of
// freshly fetched lists; failure keeps the current mock state.
func (o *Orchestrator) Retry(ctx context.Context) error {
	o.logger.Info("retrying station api connection")
	return o.connect(ctx)
}

func (o *Orchestrator) connect(ctx context.Context) error {
	err := o.client.Health(ctx)

	o.mu.Lock()
	o.lastProbeAt = o.now().UTC()
	o.mu.Unlock()

	if err != nil {
		o.goOffline(err)
		return nil
	}

	o.mu.Lock()
	o.phase = phaseSynced
	o.lastError = ""
	o.mu.Unlock()
	o.logger.Info("station api reachable")
	o.emit(Event{Resource: ResourceConnectivity, Connectivity: models.Connected})

	for _, r := range []Resource{ResourceTanks, ResourceAllocations} {
		if err := o.refresh(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// Connectivity returns the current connectivity state.
func (o *Orchestrator) Connectivity() models.ConnectivityState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return models.ConnectivityState{
		Status:      o.phase.connectivity(),
		LastProbeAt: o.lastProbeAt,
		LastError:   o.lastError,
	}
}

// Subscribe registers fn for change events and returns a function removing it.
func (o *Orchestrator) Subscribe(fn func(Event)) func() {
	o.subMu.Lock()
	defer o.subMu.Unlock()

	id := o.nextSub
	o.nextSub++
	o.subs[id] = fn

	return func() {
		o.subMu.Lock()
		defer o.subMu.Unlock()
		delete(o.subs, id)
	}
}

func (o *Orchestrator) emit(ev Event) {
	o.subMu.Lock()
	fns := make([]func(Event), 0, len(o.subs))
	for _, fn := range o.subs {
		fns = append(fns, fn)
	}
	o.subMu.Unlock()

	if ev.Connectivity == "" {
		ev.Connectivity = o.Connectivity().Status
	}
	for _, fn := range fns {
		fn(ev)
	}
}

func (o *Orchestrator) online() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.phase == phaseSynced
}

// goOffline switches to the mock collections. They are seeded once per
// degradation, from the last fetched lists when there are any.
func (o *Orchestrator) goOffline(cause error) {
	o.mu.Lock()
	wasOffline := o.phase == phaseOffline
	o.phase = phaseOffline
	o.lastError = cause.Error()
	if !wasOffline {
		if o.fetched {
			o.mock.Reset(mockdata.Dataset{Tanks: o.tanks, Allocations: o.allocations})
		} else {
			o.mock.Reset(o.fallback)
		}
	}
	o.mu.Unlock()

	if wasOffline {
		o.logger.Warn("station api still unreachable", zap.Error(cause))
		return
	}

	o.logger.Warn("station api unreachable, using mock data", zap.Error(cause))
	o.emit(Event{Resource: ResourceConnectivity, Connectivity: models.Disconnected})
	o.emit(Event{Resource: ResourceTanks, Connectivity: models.Disconnected})
	o.emit(Event{Resource: ResourceAllocations, Connectivity: models.Disconnected})
}

// refresh fetches the canonical list of r. A transport failure degrades to
// offline and is not reported as an error.
func (o *Orchestrator) refresh(ctx context.Context, r Resource) error {
	var err error
	switch r {
	case ResourceTanks:
		var raw []stationapi.TankRecord
		if raw, err = o.client.ListTanks(ctx, ""); err == nil {
			tanks := records.TanksFromWire(raw)
			o.mu.Lock()
			o.tanks = tanks
			o.fetched = true
			o.mu.Unlock()
		}
	case ResourceAllocations:
		var raw []stationapi.SupplyRecord
		if raw, err = o.client.ListSupply(ctx, ""); err == nil {
			allocations := records.NormalizeAll(raw)
			o.mu.Lock()
			o.allocations = allocations
			o.fetched = true
			o.mu.Unlock()
		}
	default:
		return fmt.Errorf("unknown resource %q", r)
	}

	switch {
	case err == nil:
		o.emit(Event{Resource: r})
		return nil
	case stationapi.IsTransport(err):
		o.goOffline(err)
		return nil
	default:
		o.logger.Error("failed to fetch canonical list", zap.String("resource", string(r)), zap.Error(err))
		return fmt.Errorf("fetch %s: %w", r, err)
	}
}

// acquire takes the per-resource submission gate.
func (o *Orchestrator) acquire(r Resource) (func(), error) {
	o.gateMu.Lock()
	defer o.gateMu.Unlock()

	if o.inflight[r] {
		return nil, ErrSubmissionInProgress
	}
	o.inflight[r] = true

	return func() {
		o.gateMu.Lock()
		defer o.gateMu.Unlock()
		delete(o.inflight, r)
	}, nil
}

// apply runs a mutation remote-first. A transport failure degrades to offline
// and the mutation is applied locally instead; any other remote error is
// returned unchanged and nothing is mutated. When the remote call succeeds but
// the refetch degrades to offline, the mutation is replayed on the freshly
// seeded mock collections so the local view still contains it. The caller
// holds the gate of r.
func (o *Orchestrator) apply(ctx context.Context, r Resource, op string, remote func(context.Context) error, local func() error) error {
	if o.online() {
		err := remote(ctx)
		switch {
		case err == nil:
			o.logger.Info("remote mutation applied", zap.String("op", op))
			if err := o.refresh(ctx, r); err != nil {
				o.logger.Warn("mutation applied but list refresh failed", zap.String("op", op), zap.Error(err))
			}
			if !o.online() {
				o.mirror(r, op, local)
			}
			return nil
		case stationapi.IsTransport(err):
			o.goOffline(err)
		default:
			var apiErr *stationapi.APIError
			if errors.As(err, &apiErr) {
				o.logger.Error("station api rejected mutation",
					zap.String("op", op),
					zap.Int("status", apiErr.StatusCode),
					zap.String("message", apiErr.Message))
			} else {
				o.logger.Error("remote mutation failed", zap.String("op", op), zap.Error(err))
			}
			return err
		}
	}

	if err := local(); err != nil {
		return err
	}
	o.logger.Info("mutation applied to mock data", zap.String("op", op))
	o.emit(Event{Resource: r})
	return nil
}

// mirror replays a remotely confirmed mutation on the mock collections after
// the follow-up refetch lost the connection.
func (o *Orchestrator) mirror(r Resource, op string, local func() error) {
	if err := local(); err != nil {
		o.logger.Warn("remote mutation could not be mirrored to mock data", zap.String("op", op), zap.Error(err))
		return
	}
	o.logger.Info("remote mutation mirrored to mock data", zap.String("op", op))
	o.emit(Event{Resource: r})
}
