package orchestrator

import (
	"errors"

	"github.com/mamadbah2/fuelshare/internal/service/mockdata"
	"github.com/mamadbah2/fuelshare/internal/service/pricing"
	"github.com/mamadbah2/fuelshare/internal/service/sharing"
)

var (
	// ErrSubmissionInProgress is returned when a mutation of the same resource is
	// already running. Nothing is queued.
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	// ErrInvalidStock indicates a current stock outside [0, capacity].
	ErrInvalidStock = errors.New("current stock must be between 0 and the tank capacity")
	// ErrInvalidRefill indicates a refill of zero or negative liters.
	ErrInvalidRefill = errors.New("refill quantity must be positive")
	// ErrTankIncomplete indicates a tank without a station or fuel type.
	ErrTankIncomplete = errors.New("tank station and fuel type are required")

	// ErrTankNotFound indicates an unknown tank id.
	ErrTankNotFound = mockdata.ErrTankNotFound
	// ErrAllocationNotFound indicates an unknown allocation id.
	ErrAllocationNotFound = mockdata.ErrAllocationNotFound
)

var validationErrors = []error{
	ErrInvalidStock,
	ErrInvalidRefill,
	ErrTankIncomplete,
	sharing.ErrStationRequired,
	sharing.ErrDuplicateDestination,
	sharing.ErrEntryNotFound,
	sharing.ErrProductRequired,
	sharing.ErrNoPositiveQuantity,
	pricing.ErrNoAffectedTanks,
	pricing.ErrNonPositivePrice,
	pricing.ErrReasonRequired,
	pricing.ErrUnknownScope,
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err refers to an unknown tank or allocation.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTankNotFound) || errors.Is(err, ErrAllocationNotFound)
}
