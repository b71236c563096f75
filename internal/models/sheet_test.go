package models

import (
	"errors"
	"testing"
	"time"
)

func TestSheetStateNext(t *testing.T) {
	tests := []struct {
		name    string
		from    SheetState
		event   SheetEvent
		want    SheetState
		wantErr bool
	}{
		{"soft delete active", SheetActive, EventSoftDelete, SheetDeleted, false},
		{"restore deleted", SheetDeleted, EventRestore, SheetActive, false},
		{"purge deleted", SheetDeleted, EventPurge, SheetPurged, false},
		{"purge active is illegal", SheetActive, EventPurge, SheetActive, true},
		{"restore active is illegal", SheetActive, EventRestore, SheetActive, true},
		{"soft delete deleted is illegal", SheetDeleted, EventSoftDelete, SheetDeleted, true},
		{"purged is terminal", SheetPurged, EventRestore, SheetPurged, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Next(tt.event)
			if tt.wantErr {
				if !errors.Is(err, ErrIllegalTransition) {
					t.Fatalf("expected ErrIllegalTransition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Next() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseSheetState(t *testing.T) {
	if s, err := ParseSheetState("active"); err != nil || s != SheetActive {
		t.Errorf("ParseSheetState(active) = %s, %v", s, err)
	}
	if s, err := ParseSheetState("deleted"); err != nil || s != SheetDeleted {
		t.Errorf("ParseSheetState(deleted) = %s, %v", s, err)
	}
	if _, err := ParseSheetState("purged"); err == nil {
		t.Error("purged must never be read back from storage")
	}
}

func TestNewSheet(t *testing.T) {
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	s := NewSheet("  Feb 2026 ", now)
	if s.Name != "Feb 2026" {
		t.Errorf("name not trimmed: %q", s.Name)
	}
	if !s.IsActive() {
		t.Error("new sheet should be active")
	}
	if !s.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", s.CreatedAt, now)
	}
	if err := (Sheet{Name: "   "}).Validate(); !errors.Is(err, ErrEmptySheetName) {
		t.Errorf("expected ErrEmptySheetName, got %v", err)
	}
}
