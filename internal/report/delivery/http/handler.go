package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/warungio/stockpilot/internal/report/domain"
	"github.com/warungio/stockpilot/internal/report/usecase/query"
	userhttp "github.com/warungio/stockpilot/internal/user/delivery/http"
)

const dateLayout = "2006-01-02"

// ReportHandler handles HTTP requests for reports
type ReportHandler struct {
	lowStockHandler       *query.LowStockHandler
	monthlyRevenueHandler *query.MonthlyRevenueHandler
	topSellerHandler      *query.TopSellerHandler
	dailySeriesHandler    *query.DailySeriesHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(repo domain.ReportRepository) *ReportHandler {
	return &ReportHandler{
		lowStockHandler:       query.NewLowStockHandler(repo),
		monthlyRevenueHandler: query.NewMonthlyRevenueHandler(repo),
		topSellerHandler:      query.NewTopSellerHandler(repo),
		dailySeriesHandler:    query.NewDailySeriesHandler(repo),
	}
}

// LowStock handles GET /api/reports/low-stock
func (h *ReportHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	q := query.LowStockQuery{UserID: userID}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		q.Limit = limit
	}

	items, err := h.lowStockHandler.Handle(r.Context(), q)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, items)
}

// MonthlyRevenue handles GET /api/reports/monthly-revenue
func (h *ReportHandler) MonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	q := query.MonthlyRevenueQuery{UserID: userID}
	if year, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
		q.Year = year
	}
	if month, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil {
		q.Month = time.Month(month)
	}

	result, err := h.monthlyRevenueHandler.Handle(r.Context(), q)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// TopSeller handles GET /api/reports/top-seller
func (h *ReportHandler) TopSeller(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	q := query.TopSellerQuery{UserID: userID}
	if start, err := time.Parse(dateLayout, r.URL.Query().Get("date_start")); err == nil {
		q.Start = start
	}
	if end, err := time.Parse(dateLayout, r.URL.Query().Get("date_end")); err == nil {
		q.End = end
	}

	item, err := h.topSellerHandler.Handle(r.Context(), q)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if item == nil {
		h.respondJSON(w, http.StatusOK, map[string]string{"message": "No sales in the selected period"})
		return
	}

	h.respondJSON(w, http.StatusOK, item)
}

// DailySales handles GET /api/reports/daily-sales
func (h *ReportHandler) DailySales(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	q := query.DailySeriesQuery{UserID: userID}
	if start, err := time.Parse(dateLayout, r.URL.Query().Get("date_start")); err == nil {
		q.Start = start
	}
	if end, err := time.Parse(dateLayout, r.URL.Query().Get("date_end")); err == nil {
		q.End = end
	}

	points, err := h.dailySeriesHandler.Handle(r.Context(), q)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, points)
}

func (h *ReportHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *ReportHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all report routes behind authentication
func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/reports/low-stock", userhttp.AuthMiddleware(h.LowStock)).Methods("GET")
	router.HandleFunc("/api/reports/monthly-revenue", userhttp.AuthMiddleware(h.MonthlyRevenue)).Methods("GET")
	router.HandleFunc("/api/reports/top-seller", userhttp.AuthMiddleware(h.TopSeller)).Methods("GET")
	router.HandleFunc("/api/reports/daily-sales", userhttp.AuthMiddleware(h.DailySales)).Methods("GET")
}
