package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ResidentStatus is the occupancy status of a flat.
type ResidentStatus string

const (
	ResidentSold   ResidentStatus = "Sold"
	ResidentUnsold ResidentStatus = "Unsold"
)

var (
	ErrEmptyFlatNo         = errors.New("flat number is required")
	ErrEmptyOwnerName      = errors.New("owner name is required")
	ErrNegativeMaintAmount = errors.New("maintenance amount must not be negative")
	ErrInvalidStatus       = errors.New("status must be Sold or Unsold")
)

// ParseResidentStatus maps stored or submitted text to a ResidentStatus.
// Records written before status existed carry an empty value and count as Sold.
func ParseResidentStatus(s string) (ResidentStatus, error) {
	switch ResidentStatus(strings.TrimSpace(s)) {
	case "", ResidentSold:
		return ResidentSold, nil
	case ResidentUnsold:
		return ResidentUnsold, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Resident is one flat in the society roster.
type Resident struct {
	// ID is the unique identifier for the resident (UUID format).
	ID string

	// FlatNo identifies the unit. Uniqueness is expected but not enforced.
	FlatNo string

	// OwnerName is the display name of the owner.
	OwnerName string

	// MaintAmount is the expected monthly maintenance payment.
	MaintAmount decimal.Decimal

	// Status is Sold or Unsold. Unsold flats are not expected to pay.
	Status ResidentStatus
}

// Validate checks the form-level rules for a resident.
func (r Resident) Validate() error {
	if NormalizeFlatNo(r.FlatNo) == "" {
		return ErrEmptyFlatNo
	}
	if strings.TrimSpace(r.OwnerName) == "" {
		return ErrEmptyOwnerName
	}
	if r.MaintAmount.IsNegative() {
		return ErrNegativeMaintAmount
	}
	if r.Status != ResidentSold && r.Status != ResidentUnsold {
		return ErrInvalidStatus
	}
	return nil
}

// NormalizeFlatNo returns the matching key for a flat number.
func NormalizeFlatNo(flatNo string) string {
	return strings.TrimSpace(flatNo)
}
