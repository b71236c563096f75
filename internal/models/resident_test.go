package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseResidentStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    ResidentStatus
		wantErr bool
	}{
		{"Sold", ResidentSold, false},
		{"Unsold", ResidentUnsold, false},
		{"", ResidentSold, false},
		{" Unsold ", ResidentUnsold, false},
		{"Rented", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseResidentStatus(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResidentValidate(t *testing.T) {
	good := Resident{FlatNo: "A-101", OwnerName: "Asha", MaintAmount: decimal.NewFromInt(1500), Status: ResidentSold}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := []struct {
		r    Resident
		want error
	}{
		{Resident{FlatNo: "  ", OwnerName: "x", Status: ResidentSold}, ErrEmptyFlatNo},
		{Resident{FlatNo: "A1", OwnerName: "", Status: ResidentSold}, ErrEmptyOwnerName},
		{Resident{FlatNo: "A1", OwnerName: "x", MaintAmount: decimal.NewFromInt(-1), Status: ResidentSold}, ErrNegativeMaintAmount},
		{Resident{FlatNo: "A1", OwnerName: "x", Status: "Rented"}, ErrInvalidStatus},
	}
	for i, tc := range bad {
		if err := tc.r.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestParseAmountRoundsToTwoPlaces(t *testing.T) {
	got, err := ParseAmount("1200.005")
	if err != nil {
		t.Fatalf("ParseAmount failed: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("1200.01")) {
		t.Errorf("got %s, want 1200.01", got)
	}
	if _, err := ParseAmount("abc"); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}
