package sharing

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/fuelshare/internal/domain/amount"
	"github.com/mamadbah2/fuelshare/internal/domain/models"
)

var (
	// ErrStationRequired indicates a destination without a station.
	ErrStationRequired = errors.New("destination station is required")
	// ErrDuplicateDestination indicates the station is already a destination.
	ErrDuplicateDestination = errors.New("station is already a destination")
	// ErrEntryNotFound indicates an unknown destination entry id.
	ErrEntryNotFound = errors.New("destination entry not found")
	// ErrProductRequired indicates no product was selected.
	ErrProductRequired = errors.New("product is required")
	// ErrNoPositiveQuantity indicates no destination carries a positive quantity.
	ErrNoPositiveQuantity = errors.New("at least one destination needs a positive quantity")
)

// Entry is one destination row of an in-progress share.
type Entry struct {
	ID        string `json:"id"`
	StationID string `json:"stationId"`
	Station   string `json:"station"`
	Quantity  string `json:"quantity"`
}

// Builder holds the state of a single share operation until it is submitted.
// It is not safe for concurrent use.
type Builder struct {
	product   string
	date      string
	rate      string
	salesRate string
	createdBy string
	entries   []Entry
	totals    Totals
	newID     func() string
}

// NewBuilder starts an empty share draft on behalf of createdBy.
func NewBuilder(createdBy string) *Builder {
	b := &Builder{
		createdBy: createdBy,
		newID:     func() string { return uuid.NewString() },
	}
	b.recompute()
	return b
}

// SetProduct selects the fuel product being shared.
func (b *Builder) SetProduct(product string) {
	b.product = strings.TrimSpace(product)
}

// SetDate sets the share date.
func (b *Builder) SetDate(date string) {
	b.date = date
}

// SetRate sets the per-liter cost rate and recomputes totals.
func (b *Builder) SetRate(rate string) {
	b.rate = rate
	b.recompute()
}

// SetSalesRate sets the per-liter sales rate and recomputes totals.
func (b *Builder) SetSalesRate(salesRate string) {
	b.salesRate = salesRate
	b.recompute()
}

// AddDestination appends a station with an empty quantity. Stations are matched by id,
// so two stations sharing a display name are still distinct destinations. A station
// without an id is keyed by its name; a station without a name is rejected.
func (b *Builder) AddDestination(station models.Station) (Entry, error) {
	station.ID = strings.TrimSpace(station.ID)
	if strings.TrimSpace(station.Name) == "" {
		return Entry{}, ErrStationRequired
	}
	if station.ID == "" {
		station.ID = station.Name
	}
	for _, e := range b.entries {
		if e.StationID == station.ID {
			return Entry{}, ErrDuplicateDestination
		}
	}

	entry := Entry{ID: b.newID(), StationID: station.ID, Station: station.Name}
	b.entries = append(b.entries, entry)
	b.recompute()
	return entry, nil
}

// RemoveDestination drops the entry with the given id.
func (b *Builder) RemoveDestination(entryID string) error {
	for i, e := range b.entries {
		if e.ID == entryID {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			b.recompute()
			return nil
		}
	}
	return ErrEntryNotFound
}

// UpdateQuantity replaces the quantity string of an entry.
func (b *Builder) UpdateQuantity(entryID, value string) error {
	for i := range b.entries {
		if b.entries[i].ID == entryID {
			b.entries[i].Quantity = value
			b.recompute()
			return nil
		}
	}
	return ErrEntryNotFound
}

// Entries returns a copy of the destination rows.
func (b *Builder) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Totals returns the totals of the current state.
func (b *Builder) Totals() Totals {
	return b.totals
}

// Validate checks the submission precondition.
func (b *Builder) Validate() error {
	if b.product == "" {
		return ErrProductRequired
	}
	for _, e := range b.entries {
		if amount.ParseOrZero(e.Quantity).IsPositive() {
			return nil
		}
	}
	return ErrNoPositiveQuantity
}

// Request validates the draft and turns it into a submittable share.
func (b *Builder) Request() (models.ShareRequest, error) {
	if err := b.Validate(); err != nil {
		return models.ShareRequest{}, err
	}

	destinations := make([]models.Destination, 0, len(b.entries))
	for _, e := range b.entries {
		destinations = append(destinations, models.Destination{
			StationID: e.StationID,
			Station:   e.Station,
			Quantity:  amount.ParseOrZero(e.Quantity),
		})
	}

	return models.ShareRequest{
		Date:           b.date,
		Product:        b.product,
		Destinations:   destinations,
		Rate:           amount.ParseOrZero(b.rate),
		SalesRate:      amount.ParseOrZero(b.salesRate),
		TotalQuantity:  b.totals.TotalQty,
		TotalCost:      b.totals.AmountCost,
		TotalSales:     b.totals.AmountSales,
		ExpectedProfit: b.totals.ExpectedProfit,
		CreatedBy:      b.createdBy,
	}, nil
}

// HasNegativeQuantity reports whether any entry parses to a negative quantity.
func (b *Builder) HasNegativeQuantity() bool {
	for _, e := range b.entries {
		if amount.ParseOrZero(e.Quantity).IsNegative() {
			return true
		}
	}
	return false
}

func (b *Builder) recompute() {
	quantities := make(map[string]string, len(b.entries))
	for _, e := range b.entries {
		quantities[e.ID] = e.Quantity
	}
	b.totals = CalculateTotals(quantities, b.rate, b.salesRate)
}

// DestinationTotals prices a list of canonical destinations.
func DestinationTotals(destinations []models.Destination, rate, salesRate decimal.Decimal) Totals {
	qty := decimal.Zero
	for _, d := range destinations {
		qty = qty.Add(d.Quantity)
	}
	return TotalsFor(qty, rate, salesRate)
}

// ValidateShare applies the submission precondition to canonical destinations.
// Destinations must name a station and be unique by station id, or by name when
// the id is missing.
func ValidateShare(product string, destinations []models.Destination) error {
	if strings.TrimSpace(product) == "" {
		return ErrProductRequired
	}

	seen := make(map[string]bool, len(destinations))
	positive := false
	for _, d := range destinations {
		key := destinationKey(d)
		if key == "" {
			return ErrStationRequired
		}
		if seen[key] {
			return ErrDuplicateDestination
		}
		seen[key] = true
		if d.Quantity.IsPositive() {
			positive = true
		}
	}
	if !positive {
		return ErrNoPositiveQuantity
	}
	return nil
}

func destinationKey(d models.Destination) string {
	if id := strings.TrimSpace(d.StationID); id != "" {
		return id
	}
	return strings.TrimSpace(d.Station)
}
