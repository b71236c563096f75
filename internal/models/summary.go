package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyMonthName = errors.New("month name is required")
	ErrNegativeTotal  = errors.New("totals must not be negative")
)

// MonthlySummary is a manually entered monthly rollup.
// It is not derived from sheets and never affects sheet balances.
type MonthlySummary struct {
	// ID is the unique identifier for the summary (UUID format).
	ID string

	// MonthName is free text, e.g. "March 2025".
	MonthName string

	// TotalCollection is the amount collected that month.
	TotalCollection decimal.Decimal

	// TotalExpense is the amount spent that month.
	TotalExpense decimal.Decimal

	// CreatedAt orders summaries for display (newest first).
	CreatedAt time.Time
}

// Net returns TotalCollection - TotalExpense.
func (s MonthlySummary) Net() decimal.Decimal {
	return s.TotalCollection.Sub(s.TotalExpense)
}

// Validate checks the form-level rules for a summary.
func (s MonthlySummary) Validate() error {
	if strings.TrimSpace(s.MonthName) == "" {
		return ErrEmptyMonthName
	}
	if s.TotalCollection.IsNegative() || s.TotalExpense.IsNegative() {
		return ErrNegativeTotal
	}
	return nil
}
