package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/warungio/stockpilot/internal/sales/domain"
	"github.com/warungio/stockpilot/internal/sales/usecase/command"
	"github.com/warungio/stockpilot/internal/sales/usecase/query"
)

const saleDateLayout = "2006-01-02"

// ListSalesTool lists recorded sales with optional filters.
type ListSalesTool struct {
	handler *query.ListSalesHandler
}

func NewListSalesTool(handler *query.ListSalesHandler) *ListSalesTool {
	return &ListSalesTool{handler: handler}
}

func (t *ListSalesTool) Name() string { return "list_sales" }

func (t *ListSalesTool) Description() string {
	return "Menampilkan daftar transaksi penjualan. Parameters: goods_name (opsional, filter nama barang), date_start (opsional, YYYY-MM-DD), date_end (opsional, YYYY-MM-DD), limit (opsional, default 20)"
}

func (t *ListSalesTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"goods_name": map[string]interface{}{
				"type":        "string",
				"description": "Filter berdasarkan nama barang",
			},
			"date_start": map[string]interface{}{
				"type":        "string",
				"description": "Tanggal awal, format YYYY-MM-DD",
			},
			"date_end": map[string]interface{}{
				"type":        "string",
				"description": "Tanggal akhir, format YYYY-MM-DD",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Jumlah maksimum transaksi yang ditampilkan",
			},
		},
	}
}

func (t *ListSalesTool) Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error) {
	filter := domain.SalesFilter{GoodsName: argString(args, "goods_name")}
	if start, ok := argDate(args, "date_start"); ok {
		filter.DateStart = &start
	}
	if end, ok := argDate(args, "date_end"); ok {
		filter.DateEnd = &end
	}
	if limit, ok := argInt(args, "limit"); ok {
		filter.Limit = limit
	}

	result, err := t.handler.Handle(ctx, query.ListSalesQuery{UserID: userID, Filter: filter})
	if err != nil {
		return "", err
	}
	if len(result.Sales) == 0 {
		return "Tidak ada transaksi penjualan yang ditemukan.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ditemukan %d transaksi (total %d):\n", len(result.Sales), result.Total)
	for _, s := range result.Sales {
		fmt.Fprintf(&b, "- [ID %d] barang ID %d, %d unit, %s, tanggal %s\n",
			s.ID, s.GoodsID, s.Quantity, formatRupiah(s.TotalProfit), s.SaleDate.Format(saleDateLayout))
	}
	return b.String(), nil
}

// GetSalesDetailTool shows one sale.
type GetSalesDetailTool struct {
	handler *query.GetSaleHandler
}

func NewGetSalesDetailTool(handler *query.GetSaleHandler) *GetSalesDetailTool {
	return &GetSalesDetailTool{handler: handler}
}

func (t *GetSalesDetailTool) Name() string { return "get_sales_detail" }

func (t *GetSalesDetailTool) Description() string {
	return "Menampilkan detail satu transaksi penjualan. Parameters: sales_id (ID transaksi)"
}

func (t *GetSalesDetailTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"sales_id": map[string]interface{}{
				"type":        "integer",
				"description": "ID transaksi penjualan",
			},
		},
		"required": []string{"sales_id"},
	}
}

func (t *GetSalesDetailTool) Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error) {
	saleID, ok := argUint(args, "sales_id")
	if !ok {
		return "", fmt.Errorf("sales_id wajib diisi")
	}

	s, err := t.handler.Handle(ctx, query.GetSaleQuery{UserID: userID, SaleID: saleID})
	if err != nil {
		return "", err
	}
	return formatSale(s), nil
}

// RecordSaleTool records a sale and deducts stock atomically.
type RecordSaleTool struct {
	handler *command.RecordSaleHandler
}

func NewRecordSaleTool(handler *command.RecordSaleHandler) *RecordSaleTool {
	return &RecordSaleTool{handler: handler}
}

func (t *RecordSaleTool) Name() string { return "record_sale" }

func (t *RecordSaleTool) Description() string {
	return "Mencatat transaksi penjualan baru dan otomatis mengurangi stok barang. Gagal jika stok tidak mencukupi. Parameters: goods_id (ID barang), quantity (jumlah unit terjual), sale_date (opsional, YYYY-MM-DD, default hari ini)"
}

func (t *RecordSaleTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"goods_id": map[string]interface{}{
				"type":        "integer",
				"description": "ID barang yang terjual",
			},
			"quantity": map[string]interface{}{
				"type":        "integer",
				"description": "Jumlah unit terjual",
			},
			"sale_date": map[string]interface{}{
				"type":        "string",
				"description": "Tanggal penjualan, format YYYY-MM-DD",
			},
		},
		"required": []string{"goods_id", "quantity"},
	}
}

func (t *RecordSaleTool) Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error) {
	cmd := command.RecordSaleCommand{UserID: userID}
	if goodsID, ok := argUint(args, "goods_id"); ok {
		cmd.GoodsID = goodsID
	}
	if quantity, ok := argInt(args, "quantity"); ok {
		cmd.Quantity = quantity
	}
	if date, ok := argDate(args, "sale_date"); ok {
		cmd.SaleDate = date
	}

	s, err := t.handler.Handle(ctx, cmd)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Penjualan berhasil dicatat dengan ID %d.\n%s", s.ID, formatSale(s)), nil
}

// UpdateSaleTool corrects a recorded sale. Stock is not re-adjusted.
type UpdateSaleTool struct {
	handler *command.UpdateSaleHandler
}

func NewUpdateSaleTool(handler *command.UpdateSaleHandler) *UpdateSaleTool {
	return &UpdateSaleTool{handler: handler}
}

func (t *UpdateSaleTool) Name() string { return "update_sale" }

func (t *UpdateSaleTool) Description() string {
	return "Mengubah data transaksi penjualan yang sudah ada. Stok barang tidak ikut berubah. Parameters: sales_id (ID transaksi), quantity (opsional, jumlah unit), sale_date (opsional, YYYY-MM-DD)"
}

func (t *UpdateSaleTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"sales_id": map[string]interface{}{
				"type":        "integer",
				"description": "ID transaksi yang diubah",
			},
			"quantity": map[string]interface{}{
				"type":        "integer",
				"description": "Jumlah unit baru",
			},
			"sale_date": map[string]interface{}{
				"type":        "string",
				"description": "Tanggal baru, format YYYY-MM-DD",
			},
		},
		"required": []string{"sales_id"},
	}
}

func (t *UpdateSaleTool) Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error) {
	saleID, ok := argUint(args, "sales_id")
	if !ok {
		return "", fmt.Errorf("sales_id wajib diisi")
	}

	cmd := command.UpdateSaleCommand{UserID: userID, SaleID: saleID}
	if quantity, ok := argInt(args, "quantity"); ok {
		cmd.Quantity = &quantity
	}
	if date, ok := argDate(args, "sale_date"); ok {
		cmd.SaleDate = &date
	}

	s, err := t.handler.Handle(ctx, cmd)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Transaksi berhasil diubah.\n%s", formatSale(s)), nil
}

// DeleteSaleTool removes a sale. Deducted stock is not restored.
type DeleteSaleTool struct {
	handler *command.DeleteSaleHandler
}

func NewDeleteSaleTool(handler *command.DeleteSaleHandler) *DeleteSaleTool {
	return &DeleteSaleTool{handler: handler}
}

func (t *DeleteSaleTool) Name() string { return "delete_sale" }

func (t *DeleteSaleTool) Description() string {
	return "Menghapus transaksi penjualan. Stok yang sudah terpotong tidak dikembalikan. Parameters: sales_id (ID transaksi yang dihapus)"
}

func (t *DeleteSaleTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"sales_id": map[string]interface{}{
				"type":        "integer",
				"description": "ID transaksi yang dihapus",
			},
		},
		"required": []string{"sales_id"},
	}
}

func (t *DeleteSaleTool) Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error) {
	saleID, ok := argUint(args, "sales_id")
	if !ok {
		return "", fmt.Errorf("sales_id wajib diisi")
	}

	if err := t.handler.Handle(ctx, command.DeleteSaleCommand{UserID: userID, SaleID: saleID}); err != nil {
		return "", err
	}
	return fmt.Sprintf("Transaksi dengan ID %d berhasil dihapus.", saleID), nil
}

func formatSale(s *domain.Sale) string {
	return fmt.Sprintf("ID transaksi: %d\nID barang: %d\nJumlah: %d unit\nTotal: %s\nTanggal: %s",
		s.ID, s.GoodsID, s.Quantity, formatRupiah(s.TotalProfit), s.SaleDate.Format(saleDateLayout))
}
