package api

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCodec(t *testing.T) {
	c := Codec{}
	if c.Name() != "json" {
		t.Fatalf("Name() = %q, want json", c.Name())
	}

	t.Run("amounts marshal as strings", func(t *testing.T) {
		b, err := c.Marshal(&PaymentRow{FlatNo: "101", Status: "Paid", Amount: decimal.RequireFromString("1200.50")})
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if !strings.Contains(string(b), `"amount":"1200.5"`) {
			t.Errorf("unexpected JSON: %s", b)
		}
	})

	t.Run("empty body decodes to zero value", func(t *testing.T) {
		var req ListResidentsRequest
		if err := c.Unmarshal(nil, &req); err != nil {
			t.Errorf("Unmarshal(nil) error = %v", err)
		}
	})

	t.Run("bad JSON is an error", func(t *testing.T) {
		var req CreateSheetRequest
		if err := c.Unmarshal([]byte(`{"name": 5}`), &req); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		in := &AddCollectionRequest{SheetID: "s1", FlatNo: "A-101", Amount: "1500.00", Mode: "UPI"}
		b, err := c.Marshal(in)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		var out AddCollectionRequest
		if err := c.Unmarshal(b, &out); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if out != *in {
			t.Errorf("round trip mismatch: %+v", out)
		}
	})
}
