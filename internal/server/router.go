// Package server assembles the HTTP surface: routes, middleware chain,
// metrics endpoint and CORS.
package server

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	assistanthttp "github.com/warungio/stockpilot/internal/assistant/delivery/http"
	forecasthttp "github.com/warungio/stockpilot/internal/forecast/delivery/http"
	goodshttp "github.com/warungio/stockpilot/internal/goods/delivery/http"
	reporthttp "github.com/warungio/stockpilot/internal/report/delivery/http"
	saleshttp "github.com/warungio/stockpilot/internal/sales/delivery/http"
	userhttp "github.com/warungio/stockpilot/internal/user/delivery/http"
)

// requestTimeout bounds every HTTP request. Chat turns may run several
// tool rounds, so it sits above the agent's own model timeout.
const requestTimeout = 60 * time.Second

// Handlers groups the per-domain HTTP handlers mounted on the router.
type Handlers struct {
	User     *userhttp.UserHandler
	Goods    *goodshttp.GoodsHandler
	Sales    *saleshttp.SalesHandler
	Report   *reporthttp.ReportHandler
	Forecast *forecasthttp.ForecastHandler
	Chat     *assistanthttp.ChatHandler

	// ChatRateLimiter is optional; without it the chat endpoint is
	// only protected by authentication.
	ChatRateLimiter *RateLimiter
}

// NewRouter builds the full HTTP handler chain.
func NewRouter(h Handlers, sqlDB *sql.DB) http.Handler {
	router := mux.NewRouter()

	router.Use(RecoveryMiddleware())
	router.Use(TimeoutMiddleware(requestTimeout))
	router.Use(LoggingMiddleware)
	router.Use(RequestIDMiddleware())
	router.Use(SecurityHeadersMiddleware())

	h.User.RegisterRoutes(router)
	h.User.RegisterHealthCheck(router, sqlDB)
	h.Goods.RegisterRoutes(router)
	h.Sales.RegisterRoutes(router)
	h.Report.RegisterRoutes(router)
	h.Forecast.RegisterRoutes(router)

	if h.ChatRateLimiter != nil {
		h.Chat.RegisterRoutes(router, h.ChatRateLimiter.Middleware)
	} else {
		h.Chat.RegisterRoutes(router)
	}

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	traced := otelhttp.NewHandler(router, "stockpilot-http")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(traced)
}
