package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/warungio/stockpilot/internal/goods/domain"
	"github.com/warungio/stockpilot/internal/goods/usecase/command"
	"github.com/warungio/stockpilot/internal/goods/usecase/query"
)

// ListGoodsTool lists the user's goods with optional name search.
type ListGoodsTool struct {
	handler *query.ListGoodsHandler
}

func NewListGoodsTool(handler *query.ListGoodsHandler) *ListGoodsTool {
	return &ListGoodsTool{handler: handler}
}

func (t *ListGoodsTool) Name() string { return "list_goods" }

func (t *ListGoodsTool) Description() string {
	return "Menampilkan daftar barang milik user beserta stok dan harga. Parameters: search (opsional, filter nama atau kategori), limit (opsional, default 10)"
}

func (t *ListGoodsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"search": map[string]interface{}{
				"type":        "string",
				"description": "Filter berdasarkan nama atau kategori barang",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Jumlah maksimum barang yang ditampilkan",
			},
		},
	}
}

func (t *ListGoodsTool) Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error) {
	q := query.ListGoodsQuery{UserID: userID, Search: argString(args, "search")}
	if limit, ok := argInt(args, "limit"); ok {
		q.Limit = limit
	}

	result, err := t.handler.Handle(ctx, q)
	if err != nil {
		return "", err
	}
	if len(result.Goods) == 0 {
		return "Tidak ada barang yang ditemukan.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ditemukan %d barang (total %d):\n", len(result.Goods), result.Total)
	for _, g := range result.Goods {
		fmt.Fprintf(&b, "- [ID %d] %s", g.ID, g.Name)
		if g.Category != "" {
			fmt.Fprintf(&b, " (%s)", g.Category)
		}
		fmt.Fprintf(&b, ": stok %d, harga %s\n", g.StockQuantity, formatRupiah(g.Price))
	}
	return b.String(), nil
}

// GetGoodsDetailTool shows one goods item.
type GetGoodsDetailTool struct {
	handler *query.GetGoodsHandler
}

func NewGetGoodsDetailTool(handler *query.GetGoodsHandler) *GetGoodsDetailTool {
	return &GetGoodsDetailTool{handler: handler}
}

func (t *GetGoodsDetailTool) Name() string { return "get_goods_detail" }

func (t *GetGoodsDetailTool) Description() string {
	return "Menampilkan detail satu barang berdasarkan ID. Parameters: goods_id (ID barang)"
}

func (t *GetGoodsDetailTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"goods_id": map[string]interface{}{
				"type":        "integer",
				"description": "ID barang",
			},
		},
		"required": []string{"goods_id"},
	}
}

func (t *GetGoodsDetailTool) Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error) {
	goodsID, ok := argUint(args, "goods_id")
	if !ok {
		return "", fmt.Errorf("goods_id wajib diisi")
	}

	g, err := t.handler.Handle(ctx, query.GetGoodsQuery{UserID: userID, GoodsID: goodsID})
	if err != nil {
		return "", err
	}
	return formatGoods(g), nil
}

// AddGoodsTool creates a new goods item.
type AddGoodsTool struct {
	handler *command.CreateGoodsHandler
}

func NewAddGoodsTool(handler *command.CreateGoodsHandler) *AddGoodsTool {
	return &AddGoodsTool{handler: handler}
}

func (t *AddGoodsTool) Name() string { return "add_goods" }

func (t *AddGoodsTool) Description() string {
	return "Menambahkan barang baru ke inventory. Parameters: name (nama barang), price (harga satuan), stock (stok awal), category (opsional)"
}

func (t *AddGoodsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Nama barang",
			},
			"category": map[string]interface{}{
				"type":        "string",
				"description": "Kategori barang",
			},
			"price": map[string]interface{}{
				"type":        "number",
				"description": "Harga satuan",
			},
			"stock": map[string]interface{}{
				"type":        "integer",
				"description": "Stok awal",
			},
		},
		"required": []string{"name", "price", "stock"},
	}
}

func (t *AddGoodsTool) Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error) {
	cmd := command.CreateGoodsCommand{
		UserID:   userID,
		Name:     argString(args, "name"),
		Category: argString(args, "category"),
	}
	if price, ok := argFloat(args, "price"); ok {
		cmd.Price = price
	}
	if stock, ok := argInt(args, "stock"); ok {
		cmd.StockQuantity = stock
	}

	g, err := t.handler.Handle(ctx, cmd)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Barang %q berhasil ditambahkan dengan ID %d.\n%s", g.Name, g.ID, formatGoods(g)), nil
}

// UpdateGoodsTool edits an existing goods item. Only the provided
// fields change.
type UpdateGoodsTool struct {
	handler *command.UpdateGoodsHandler
}

func NewUpdateGoodsTool(handler *command.UpdateGoodsHandler) *UpdateGoodsTool {
	return &UpdateGoodsTool{handler: handler}
}

func (t *UpdateGoodsTool) Name() string { return "update_goods" }

func (t *UpdateGoodsTool) Description() string {
	return "Mengubah data barang yang sudah ada. Hanya field yang dikirim yang berubah. Jangan gunakan untuk mencatat penjualan. Parameters: goods_id (ID barang), name (opsional), category (opsional), price (opsional), stock (opsional)"
}

func (t *UpdateGoodsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"goods_id": map[string]interface{}{
				"type":        "integer",
				"description": "ID barang yang diubah",
			},
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Nama baru",
			},
			"category": map[string]interface{}{
				"type":        "string",
				"description": "Kategori baru",
			},
			"price": map[string]interface{}{
				"type":        "number",
				"description": "Harga baru",
			},
			"stock": map[string]interface{}{
				"type":        "integer",
				"description": "Jumlah stok baru (menimpa stok lama)",
			},
		},
		"required": []string{"goods_id"},
	}
}

func (t *UpdateGoodsTool) Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error) {
	goodsID, ok := argUint(args, "goods_id")
	if !ok {
		return "", fmt.Errorf("goods_id wajib diisi")
	}

	cmd := command.UpdateGoodsCommand{UserID: userID, GoodsID: goodsID}
	if name := argString(args, "name"); name != "" {
		cmd.Name = &name
	}
	if category := argString(args, "category"); category != "" {
		cmd.Category = &category
	}
	if price, ok := argFloat(args, "price"); ok {
		cmd.Price = &price
	}
	if stock, ok := argInt(args, "stock"); ok {
		cmd.StockQuantity = &stock
	}

	g, err := t.handler.Handle(ctx, cmd)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Barang berhasil diubah.\n%s", formatGoods(g)), nil
}

// DeleteGoodsTool removes a goods item.
type DeleteGoodsTool struct {
	handler *command.DeleteGoodsHandler
}

func NewDeleteGoodsTool(handler *command.DeleteGoodsHandler) *DeleteGoodsTool {
	return &DeleteGoodsTool{handler: handler}
}

func (t *DeleteGoodsTool) Name() string { return "delete_goods" }

func (t *DeleteGoodsTool) Description() string {
	return "Menghapus barang dari inventory. Riwayat penjualan barang tetap tersimpan. Parameters: goods_id (ID barang yang dihapus)"
}

func (t *DeleteGoodsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"goods_id": map[string]interface{}{
				"type":        "integer",
				"description": "ID barang yang dihapus",
			},
		},
		"required": []string{"goods_id"},
	}
}

func (t *DeleteGoodsTool) Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error) {
	goodsID, ok := argUint(args, "goods_id")
	if !ok {
		return "", fmt.Errorf("goods_id wajib diisi")
	}

	if err := t.handler.Handle(ctx, command.DeleteGoodsCommand{UserID: userID, GoodsID: goodsID}); err != nil {
		return "", err
	}
	return fmt.Sprintf("Barang dengan ID %d berhasil dihapus.", goodsID), nil
}

func formatGoods(g *domain.Goods) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %d\nNama: %s\n", g.ID, g.Name)
	if g.Category != "" {
		fmt.Fprintf(&b, "Kategori: %s\n", g.Category)
	}
	fmt.Fprintf(&b, "Harga: %s\nStok: %d", formatRupiah(g.Price), g.StockQuantity)
	return b.String()
}
