// Package gate decides whether a chat prompt is on topic before any
// model call is made. Off topic prompts are refused without spending
// tokens on the model.
package gate

import "strings"

// keywords cover the inventory, sales and forecast vocabulary in both
// Indonesian and English, matched as lowercase substrings.
var keywords = []string{
	// inventory
	"barang", "stok", "stock", "inventory", "inventaris", "produk", "product",
	"goods", "item", "gudang", "kategori", "category", "harga", "price",
	"restock", "restok",
	// sales
	"jual", "penjualan", "terjual", "sale", "sales", "sell", "sold",
	"transaksi", "transaction", "omzet", "omset", "revenue", "pendapatan",
	"profit", "laba", "untung", "laris",
	// reporting and forecast
	"forecast", "prediksi", "predict", "laporan", "report", "rekap",
	"bulanan", "harian", "monthly", "daily", "tren", "trend",
	// data operations
	"tambah", "catat", "ubah", "update", "hapus", "delete", "daftar",
	"list", "cari", "search", "detail",
}

// Allow reports whether the prompt touches the business domain.
// An empty prompt is never allowed.
func Allow(prompt string) bool {
	normalized := strings.ToLower(strings.TrimSpace(prompt))
	if normalized == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}
