package tool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{1500, "Rp 1.500"},
		{1250000, "Rp 1.250.000"},
		{999999999, "Rp 999.999.999"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatRupiah(tt.in))
	}
}

func TestArgHelpers(t *testing.T) {
	args := map[string]interface{}{
		"name":     "Kopi",
		"id":       float64(7),
		"id_str":   "12",
		"quantity": float64(3),
		"price":    float64(1500.5),
		"date":     "2026-08-20",
	}

	assert.Equal(t, "Kopi", argString(args, "name"))
	assert.Equal(t, "", argString(args, "missing"))

	id, ok := argUint(args, "id")
	require.True(t, ok)
	assert.Equal(t, uint(7), id)

	idStr, ok := argUint(args, "id_str")
	require.True(t, ok)
	assert.Equal(t, uint(12), idStr)

	_, ok = argUint(args, "missing")
	assert.False(t, ok)

	qty, ok := argInt(args, "quantity")
	require.True(t, ok)
	assert.Equal(t, 3, qty)

	price, ok := argFloat(args, "price")
	require.True(t, ok)
	assert.Equal(t, 1500.5, price)

	date, ok := argDate(args, "date")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), date)

	_, ok = argDate(args, "missing")
	assert.False(t, ok)
}
