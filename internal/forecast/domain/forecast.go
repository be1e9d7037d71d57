package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when no inference exists for the goods
var ErrNotFound = errors.New("forecast not found")

// Prediction is one forecasted day of demand for a goods.
type Prediction struct {
	Date              time.Time `json:"date"`
	PredictedQuantity float64   `json:"predicted_quantity"`
	Lower             float64   `json:"lower"`
	Upper             float64   `json:"upper"`
}

// RestockInference is a stored forecast run for one goods. TotalQuantity is
// the summed predicted demand over the horizon.
type RestockInference struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	UserID        uint            `json:"user_id" gorm:"index;not null"`
	GoodsID       uint            `json:"goods_id" gorm:"index;not null"`
	HorizonDays   int             `json:"horizon_days" gorm:"not null"`
	TotalQuantity float64         `json:"total_quantity" gorm:"not null;default:0"`
	FuturePreds   json.RawMessage `json:"future_preds" gorm:"type:jsonb"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TableName overrides the default table name
func (RestockInference) TableName() string {
	return "restock_inferences"
}

// Predictions decodes the stored forecast payload.
func (r *RestockInference) Predictions() ([]Prediction, error) {
	var preds []Prediction
	if len(r.FuturePreds) == 0 {
		return preds, nil
	}
	if err := json.Unmarshal(r.FuturePreds, &preds); err != nil {
		return nil, err
	}
	return preds, nil
}

// ForecastRepository persists inference runs.
type ForecastRepository interface {
	Save(ctx context.Context, inference *RestockInference) error
	FindLatest(ctx context.Context, userID, goodsID uint) (*RestockInference, error)
}

// Forecaster produces demand predictions for a goods from its sales history.
type Forecaster interface {
	Predict(ctx context.Context, userID, goodsID uint, horizonDays int) ([]Prediction, error)
}
