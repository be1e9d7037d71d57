package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/warungio/stockpilot/internal/forecast/domain"
)

// Config holds the forecaster service settings
type Config struct {
	BaseURL string `envconfig:"FORECASTER_URL" default:"http://localhost:8500"`
	Timeout int    `envconfig:"FORECASTER_TIMEOUT_SECONDS" default:"15"`
}

// HTTPForecaster calls the external forecasting service over HTTP.
type HTTPForecaster struct {
	baseURL string
	client  *http.Client
}

// NewHTTPForecaster creates a forecaster client with traced transport.
func NewHTTPForecaster(cfg Config) *HTTPForecaster {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPForecaster{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type predictRequest struct {
	UserID      uint `json:"user_id"`
	GoodsID     uint `json:"goods_id"`
	HorizonDays int  `json:"horizon_days"`
}

type predictResponse struct {
	Predictions []domain.Prediction `json:"predictions"`
}

// Predict requests demand predictions for one goods.
func (f *HTTPForecaster) Predict(ctx context.Context, userID, goodsID uint, horizonDays int) ([]domain.Prediction, error) {
	body, err := json.Marshal(predictRequest{
		UserID:      userID,
		GoodsID:     goodsID,
		HorizonDays: horizonDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecaster request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecaster returned status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode predict response: %w", err)
	}
	return out.Predictions, nil
}
