package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   bool
	}{
		{"indonesian inventory question", "Berapa stok beras saat ini?", true},
		{"english inventory question", "How much stock do I have left?", true},
		{"record a sale", "Catat penjualan 5 sabun hari ini", true},
		{"forecast request", "Tolong forecast barang yang hampir habis", true},
		{"monthly report", "Berapa omzet bulanan saya?", true},
		{"add goods", "Tambah barang baru namanya kopi bubuk", true},
		{"off topic weather", "Bagaimana cuaca di Jakarta besok?", false},
		{"off topic politics", "Siapa presiden pertama Indonesia?", false},
		{"empty prompt", "", false},
		{"whitespace only", "   \t\n", false},
		{"mixed case keyword", "Berapa STOK gula?", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allow(tt.prompt))
		})
	}
}
