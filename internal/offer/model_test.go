package offer

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountDecodesLeniently(t *testing.T) {
	var l struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
		D Amount `json:"d"`
		E Amount `json:"e"`
		F Amount `json:"f"`
	}
	raw := `{"a": 12.5, "b": "7.25", "c": null, "d": "", "e": "n/a", "f": {"x": 1}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &l))

	assert.Equal(t, "12.5", l.A.String())
	assert.Equal(t, "7.25", l.B.String())
	assert.True(t, l.C.IsZero())
	assert.True(t, l.D.IsZero())
	assert.True(t, l.E.IsZero())
	assert.True(t, l.F.IsZero())

	assert.True(t, l.A.Valid)
	assert.True(t, l.B.Valid)
	for _, a := range []Amount{l.C, l.D, l.E, l.F} {
		assert.False(t, a.Valid)
	}
}

func TestAmountAbsentFieldIsNotValid(t *testing.T) {
	var tr Transport
	require.NoError(t, json.Unmarshal([]byte(`{"distanceKm": 0}`), &tr))

	assert.True(t, tr.DistanceKm.Valid)
	assert.False(t, tr.CostPerKm.Valid)
}

func TestComputeTotals(t *testing.T) {
	lines := []Line{
		{LineValue: NewAmount("100"), TransportCost: NewAmount("10")},
		{LineValue: NewAmount("50")},
	}

	totals := ComputeTotals(lines)

	assert.True(t, totals.Lines.Equal(decimal.NewFromInt(150)))
	assert.True(t, totals.Transport.Equal(decimal.NewFromInt(10)))
	assert.True(t, totals.Grand.Equal(decimal.NewFromInt(160)))
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.True(t, totals.Grand.IsZero())
}
