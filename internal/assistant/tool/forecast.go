package tool

import (
	"context"
	"fmt"
	"strings"

	forecastquery "github.com/warungio/stockpilot/internal/forecast/usecase/query"
	reportquery "github.com/warungio/stockpilot/internal/report/usecase/query"
)

// lowStockForecastLimit caps how many items the ranking variant covers.
const lowStockForecastLimit = 10

// GetForecastTool returns restock predictions. With goods_id it
// forecasts one item; without it, it walks the lowest stock items and
// forecasts each.
type GetForecastTool struct {
	forecast *forecastquery.GetForecastHandler
	lowStock *reportquery.LowStockHandler
}

func NewGetForecastTool(forecast *forecastquery.GetForecastHandler, lowStock *reportquery.LowStockHandler) *GetForecastTool {
	return &GetForecastTool{forecast: forecast, lowStock: lowStock}
}

func (t *GetForecastTool) Name() string { return "get_forecast" }

func (t *GetForecastTool) Description() string {
	return "Mengambil prediksi forecast dan rekomendasi stok untuk barang yang hampir habis. Gunakan untuk: lihat top 10 barang dengan stok terendah dan prediksi sales nya, atau forecast spesifik barang. Parameters: goods_id (opsional, untuk forecast barang spesifik), days (jumlah hari forecast, default 7)"
}

func (t *GetForecastTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"goods_id": map[string]interface{}{
				"type":        "integer",
				"description": "ID barang untuk forecast spesifik",
			},
			"days": map[string]interface{}{
				"type":        "integer",
				"description": "Jumlah hari forecast ke depan",
			},
		},
	}
}

func (t *GetForecastTool) Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error) {
	days, ok := argInt(args, "days")
	if !ok || days <= 0 {
		days = 7
	}

	if goodsID, ok := argUint(args, "goods_id"); ok && goodsID != 0 {
		result, err := t.forecast.Handle(ctx, forecastquery.GetForecastQuery{
			UserID:      userID,
			GoodsID:     goodsID,
			HorizonDays: days,
		})
		if err != nil {
			return "", err
		}
		return formatForecast(result), nil
	}

	items, err := t.lowStock.Handle(ctx, reportquery.LowStockQuery{UserID: userID, Limit: lowStockForecastLimit})
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "Tidak ada barang di inventory.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d barang dengan stok terendah dan prediksi %d hari ke depan:\n", len(items), days)
	for _, item := range items {
		fmt.Fprintf(&b, "- [ID %d] %s: stok %d", item.GoodsID, item.Name, item.StockQuantity)
		result, ferr := t.forecast.Handle(ctx, forecastquery.GetForecastQuery{
			UserID:      userID,
			GoodsID:     item.GoodsID,
			HorizonDays: days,
		})
		if ferr != nil {
			b.WriteString(", prediksi tidak tersedia\n")
			continue
		}
		fmt.Fprintf(&b, ", perkiraan terjual %.0f unit", result.TotalExpected)
		if result.TotalExpected > float64(item.StockQuantity) {
			fmt.Fprintf(&b, " (perlu restock sekitar %.0f unit)", result.TotalExpected-float64(item.StockQuantity))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func formatForecast(r *forecastquery.GetForecastResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Forecast %s (ID %d), stok saat ini %d, horizon %d hari:\n",
		r.GoodsName, r.GoodsID, r.CurrentStock, r.HorizonDays)
	for _, p := range r.Predictions {
		fmt.Fprintf(&b, "- %s: %.1f unit (%.1f sampai %.1f)\n",
			p.Date.Format(saleDateLayout), p.PredictedQuantity, p.Lower, p.Upper)
	}
	fmt.Fprintf(&b, "Total perkiraan terjual: %.0f unit.", r.TotalExpected)
	if r.TotalExpected > float64(r.CurrentStock) {
		fmt.Fprintf(&b, " Stok kemungkinan habis, sarankan restock sekitar %.0f unit.",
			r.TotalExpected-float64(r.CurrentStock))
	}
	return b.String()
}
