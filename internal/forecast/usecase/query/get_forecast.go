package query

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/warungio/stockpilot/internal/forecast/domain"
	goodsdomain "github.com/warungio/stockpilot/internal/goods/domain"
	"github.com/warungio/stockpilot/pkg/logger"
)

// DefaultHorizonDays is used when the query does not specify a horizon.
const DefaultHorizonDays = 14

// GetForecastQuery requests a restock forecast for one goods.
type GetForecastQuery struct {
	UserID      uint
	GoodsID     uint
	HorizonDays int
}

// GetForecastResult carries the forecast plus the goods it belongs to.
type GetForecastResult struct {
	GoodsID       uint                `json:"goods_id"`
	GoodsName     string              `json:"goods_name"`
	CurrentStock  int                 `json:"current_stock"`
	HorizonDays   int                 `json:"horizon_days"`
	Predictions   []domain.Prediction `json:"predictions"`
	TotalExpected float64             `json:"total_expected"`
}

// GetForecastHandler handles forecast queries
type GetForecastHandler struct {
	goodsRepo  goodsdomain.GoodsRepository
	repo       domain.ForecastRepository
	forecaster domain.Forecaster
}

// NewGetForecastHandler creates a new forecast handler
func NewGetForecastHandler(goodsRepo goodsdomain.GoodsRepository, repo domain.ForecastRepository, forecaster domain.Forecaster) *GetForecastHandler {
	return &GetForecastHandler{goodsRepo: goodsRepo, repo: repo, forecaster: forecaster}
}

// Handle runs a fresh prediction for the goods, stores the inference,
// and returns the forecast. The goods must belong to the user.
func (h *GetForecastHandler) Handle(ctx context.Context, q GetForecastQuery) (*GetForecastResult, error) {
	if q.HorizonDays <= 0 {
		q.HorizonDays = DefaultHorizonDays
	}
	if q.HorizonDays > 90 {
		q.HorizonDays = 90
	}

	goods, err := h.goodsRepo.FindByID(ctx, q.UserID, q.GoodsID)
	if err != nil {
		return nil, err
	}

	preds, err := h.forecaster.Predict(ctx, q.UserID, q.GoodsID, q.HorizonDays)
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}

	var total float64
	for _, p := range preds {
		total += p.PredictedQuantity
	}

	// Persist the run so past inferences stay auditable. Storage failure
	// does not fail the query.
	if payload, merr := json.Marshal(preds); merr == nil {
		inference := &domain.RestockInference{
			UserID:        q.UserID,
			GoodsID:       q.GoodsID,
			HorizonDays:   q.HorizonDays,
			TotalQuantity: total,
			FuturePreds:   payload,
		}
		if serr := h.repo.Save(ctx, inference); serr != nil {
			logger.Warn(ctx).Err(serr).Uint("goods_id", q.GoodsID).Msg("Failed to store inference")
		}
	}

	return &GetForecastResult{
		GoodsID:       goods.ID,
		GoodsName:     goods.Name,
		CurrentStock:  goods.StockQuantity,
		HorizonDays:   q.HorizonDays,
		Predictions:   preds,
		TotalExpected: total,
	}, nil
}
