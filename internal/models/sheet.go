package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SheetState is the lifecycle state of an expense sheet.
//
//	Active --soft delete--> Deleted --restore--> Active
//	Deleted --purge--> Purged (terminal)
type SheetState string

const (
	SheetActive  SheetState = "active"
	SheetDeleted SheetState = "deleted"
	SheetPurged  SheetState = "purged"
)

// SheetEvent is a lifecycle transition request.
type SheetEvent string

const (
	EventSoftDelete SheetEvent = "soft_delete"
	EventRestore    SheetEvent = "restore"
	EventPurge      SheetEvent = "purge"
)

var (
	ErrEmptySheetName    = errors.New("sheet name is required")
	ErrIllegalTransition = errors.New("illegal sheet transition")
	ErrUnknownSheetState = errors.New("unknown sheet state")
	ErrSheetNotActive    = errors.New("sheet is not active")
)

var sheetTransitions = map[SheetState]map[SheetEvent]SheetState{
	SheetActive: {
		EventSoftDelete: SheetDeleted,
	},
	SheetDeleted: {
		EventRestore: SheetActive,
		EventPurge:   SheetPurged,
	},
}

// Next returns the state reached by applying ev, or ErrIllegalTransition.
func (s SheetState) Next(ev SheetEvent) (SheetState, error) {
	next, ok := sheetTransitions[s][ev]
	if !ok {
		return s, fmt.Errorf("%w: %s from %s", ErrIllegalTransition, ev, s)
	}
	return next, nil
}

// ParseSheetState maps a stored status value to a SheetState.
// Purged is never stored, so it is rejected here.
func ParseSheetState(s string) (SheetState, error) {
	switch SheetState(s) {
	case SheetActive, SheetDeleted:
		return SheetState(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSheetState, s)
	}
}

// Sheet is a monthly period that owns collections and expenses.
type Sheet struct {
	// ID is the unique identifier for the sheet (UUID format).
	ID string

	// Name is the display name, e.g. "Feb 2026".
	Name string

	// CreatedAt orders sheets for opening-balance carry forward.
	CreatedAt time.Time

	// State is the lifecycle state. New sheets start Active.
	State SheetState
}

// NewSheet returns an Active sheet created at now.
func NewSheet(name string, now time.Time) *Sheet {
	return &Sheet{
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		State:     SheetActive,
	}
}

// Validate checks the form-level rules for a sheet.
func (s Sheet) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptySheetName
	}
	return nil
}

// IsActive reports whether the sheet shows on the dashboard and carries forward.
func (s Sheet) IsActive() bool {
	return s.State == SheetActive
}
