package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/societyledger/internal/models"
)

func flats(rows []PaymentRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.FlatNo
	}
	return out
}

func TestComputePaymentStatus(t *testing.T) {
	residents := []*models.Resident{
		{FlatNo: "A1", OwnerName: "Asha", Status: models.ResidentSold},
		{FlatNo: "A2", OwnerName: "Builder", Status: models.ResidentUnsold},
	}
	collections := []*models.Collection{{FlatNo: "A1", Amount: dec("1500")}}

	t.Run("all shows unsold as N/A", func(t *testing.T) {
		rows := ComputePaymentStatus(residents, collections, FilterAll)
		require.Len(t, rows, 2)
		assert.Equal(t, "A1", rows[0].FlatNo)
		assert.Equal(t, StatusPaid, rows[0].Status)
		assert.True(t, rows[0].Amount.Equal(dec("1500")))
		assert.Equal(t, "A2", rows[1].FlatNo)
		assert.Equal(t, StatusNotApplicable, rows[1].Status)
	})

	t.Run("pending excludes unsold", func(t *testing.T) {
		rows := ComputePaymentStatus(residents, collections, FilterPending)
		assert.Empty(t, rows)
	})

	t.Run("paid", func(t *testing.T) {
		rows := ComputePaymentStatus(residents, collections, FilterPaid)
		assert.Equal(t, []string{"A1"}, flats(rows))
	})
}

func TestComputePaymentStatusMatchesNormalizedFlat(t *testing.T) {
	residents := []*models.Resident{
		{FlatNo: " B-201", Status: models.ResidentSold},
		{FlatNo: "B-202", Status: models.ResidentSold},
	}
	collections := []*models.Collection{{FlatNo: "B-201  ", Amount: dec("10")}}

	rows := ComputePaymentStatus(residents, collections, FilterPending)
	assert.Equal(t, []string{"B-202"}, flats(rows))
}

func TestComputePaymentStatusUsesStringOrder(t *testing.T) {
	residents := []*models.Resident{
		{FlatNo: "A2", Status: models.ResidentSold},
		{FlatNo: "A10", Status: models.ResidentSold},
		{FlatNo: "A1", Status: models.ResidentSold},
	}

	rows := ComputePaymentStatus(residents, nil, FilterAll)
	// Lexicographic, not numeric: A10 sorts before A2.
	assert.Equal(t, []string{"A1", "A10", "A2"}, flats(rows))
}

func TestComputePaymentStatusPartialState(t *testing.T) {
	assert.Empty(t, ComputePaymentStatus(nil, []*models.Collection{{FlatNo: "A1"}}, FilterAll))

	rows := ComputePaymentStatus([]*models.Resident{{FlatNo: "A1", Status: models.ResidentSold}}, nil, FilterAll)
	require.Len(t, rows, 1)
	assert.Equal(t, StatusPending, rows[0].Status)
}

func TestComputePaymentStatusDoesNotMutateInputs(t *testing.T) {
	residents := []*models.Resident{
		{FlatNo: "C2", Status: models.ResidentSold},
		{FlatNo: "C1", Status: models.ResidentSold},
	}
	ComputePaymentStatus(residents, nil, FilterAll)
	assert.Equal(t, "C2", residents[0].FlatNo)
	assert.Equal(t, "C1", residents[1].FlatNo)
}

func TestDuplicatePaymentGuard(t *testing.T) {
	sheetA := []*models.Collection{{FlatNo: "A1", SheetID: "a"}}

	err := DuplicatePaymentGuard("A1", sheetA)
	assert.ErrorIs(t, err, ErrDuplicatePayment)

	err = DuplicatePaymentGuard(" A1 ", sheetA)
	assert.ErrorIs(t, err, ErrDuplicatePayment)

	// Same flat in a different sheet is fine.
	var sheetB []*models.Collection
	assert.NoError(t, DuplicatePaymentGuard("A1", sheetB))

	assert.NoError(t, DuplicatePaymentGuard("A2", sheetA))
}

func TestParseStatusFilter(t *testing.T) {
	tests := map[string]StatusFilter{
		"":        FilterAll,
		"all":     FilterAll,
		"Paid":    FilterPaid,
		"pending": FilterPending,
		"bogus":   FilterAll,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseStatusFilter(in), "input %q", in)
	}
}
