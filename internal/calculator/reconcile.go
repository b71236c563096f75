package calculator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/societyledger/internal/models"
)

// ErrDuplicatePayment is returned when a flat already has a collection in the sheet.
var ErrDuplicatePayment = errors.New("payment already logged for this flat")

// PaymentStatus is a resident's reconciliation result for one sheet.
type PaymentStatus string

const (
	StatusPaid          PaymentStatus = "Paid"
	StatusPending       PaymentStatus = "Pending"
	StatusNotApplicable PaymentStatus = "N/A"
)

// StatusFilter selects a payment status view.
type StatusFilter string

const (
	FilterAll     StatusFilter = "all"
	FilterPaid    StatusFilter = "paid"
	FilterPending StatusFilter = "pending"
)

// ParseStatusFilter maps user input to a filter. Anything unrecognised is FilterAll.
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterPaid:
		return FilterPaid
	case FilterPending:
		return FilterPending
	default:
		return FilterAll
	}
}

// PaymentRow is one line of the payment status table.
type PaymentRow struct {
	FlatNo    string
	OwnerName string
	Status    PaymentStatus

	// Amount is the collected amount for Paid rows, zero otherwise.
	Amount decimal.Decimal
}

// ComputePaymentStatus matches the roster against a sheet's collections.
//
// Unsold flats are N/A: shown in the all view, excluded from paid and pending.
// Rows are ordered by flat number using plain string comparison, so "A10"
// sorts before "A2" unless flat numbers are zero-padded.
// Inputs are not modified.
func ComputePaymentStatus(residents []*models.Resident, collections []*models.Collection, filter StatusFilter) []PaymentRow {
	paid := make(map[string]decimal.Decimal, len(collections))
	for _, c := range collections {
		if c == nil {
			continue
		}
		key := models.NormalizeFlatNo(c.FlatNo)
		paid[key] = paid[key].Add(c.Amount)
	}

	rows := make([]PaymentRow, 0, len(residents))
	for _, r := range residents {
		if r == nil {
			continue
		}
		row := PaymentRow{FlatNo: r.FlatNo, OwnerName: r.OwnerName}

		if r.Status == models.ResidentUnsold {
			if filter == FilterPaid || filter == FilterPending {
				continue
			}
			row.Status = StatusNotApplicable
			rows = append(rows, row)
			continue
		}

		amount, ok := paid[models.NormalizeFlatNo(r.FlatNo)]
		if ok {
			row.Status = StatusPaid
			row.Amount = amount
		} else {
			row.Status = StatusPending
		}

		switch {
		case filter == FilterPaid && !ok:
			continue
		case filter == FilterPending && ok:
			continue
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].FlatNo < rows[j].FlatNo
	})
	return rows
}

// DuplicatePaymentGuard rejects a second collection for the same flat in a sheet.
// existing must hold only the target sheet's collections. The check runs
// against the caller's snapshot, not the store.
func DuplicatePaymentGuard(proposedFlatNo string, existing []*models.Collection) error {
	key := models.NormalizeFlatNo(proposedFlatNo)
	for _, c := range existing {
		if c != nil && models.NormalizeFlatNo(c.FlatNo) == key {
			return fmt.Errorf("%w: %s", ErrDuplicatePayment, key)
		}
	}
	return nil
}

// SortResidents orders a copy of the roster by flat number (string order).
func SortResidents(residents []*models.Resident) []*models.Resident {
	out := make([]*models.Resident, len(residents))
	copy(out, residents)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FlatNo < out[j].FlatNo
	})
	return out
}
