package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyDate        = errors.New("date is required")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrEmptySheetID     = errors.New("sheet id is required")
	ErrEmptyDescription = errors.New("description is required")
	ErrEmptyMode        = errors.New("payment mode is required")
)

// Collection is a maintenance payment from one resident for one sheet.
// Collections are immutable once written; they can only be deleted.
type Collection struct {
	// ID is the unique identifier for the collection (UUID format).
	ID string

	// Date is the payment date as entered (YYYY-MM-DD).
	Date string

	// FlatNo is the paying flat, as submitted.
	FlatNo string

	// OwnerName is a snapshot of the owner at entry time.
	OwnerName string

	// Amount is the amount received.
	Amount decimal.Decimal

	// Mode is the payment mode, e.g. "Cash" or "UPI".
	Mode string

	// SheetID is the owning sheet.
	SheetID string
}

// Validate checks the form-level rules for a collection.
func (c Collection) Validate() error {
	if strings.TrimSpace(c.Date) == "" {
		return ErrEmptyDate
	}
	if NormalizeFlatNo(c.FlatNo) == "" {
		return ErrEmptyFlatNo
	}
	if !c.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(c.Mode) == "" {
		return ErrEmptyMode
	}
	if c.SheetID == "" {
		return ErrEmptySheetID
	}
	return nil
}

// Expense is money spent from a sheet. Expenses are append/delete only.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Date is the expense date as entered (YYYY-MM-DD).
	Date string

	// Amount is the amount spent.
	Amount decimal.Decimal

	// Description says what the money was spent on.
	Description string

	// SheetID is the owning sheet.
	SheetID string
}

// Validate checks the form-level rules for an expense.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Date) == "" {
		return ErrEmptyDate
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.SheetID == "" {
		return ErrEmptySheetID
	}
	return nil
}
