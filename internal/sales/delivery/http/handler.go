package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	goodsdomain "github.com/warungio/stockpilot/internal/goods/domain"
	"github.com/warungio/stockpilot/internal/sales/domain"
	"github.com/warungio/stockpilot/internal/sales/usecase/command"
	"github.com/warungio/stockpilot/internal/sales/usecase/query"
	userhttp "github.com/warungio/stockpilot/internal/user/delivery/http"
)

const dateLayout = "2006-01-02"

// SalesHandler handles HTTP requests for sales
type SalesHandler struct {
	recordHandler *command.RecordSaleHandler
	updateHandler *command.UpdateSaleHandler
	deleteHandler *command.DeleteSaleHandler
	getHandler    *query.GetSaleHandler
	listHandler   *query.ListSalesHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(repo domain.SalesRepository, publisher command.SaleEventPublisher) *SalesHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_requests_total",
			Help: "Total number of requests to sales endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sales_request_duration_seconds",
			Help:    "Duration of sales endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &SalesHandler{
		recordHandler:  command.NewRecordSaleHandler(repo, publisher),
		updateHandler:  command.NewUpdateSaleHandler(repo),
		deleteHandler:  command.NewDeleteSaleHandler(repo),
		getHandler:     query.NewGetSaleHandler(repo),
		listHandler:    query.NewListSalesHandler(repo),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *SalesHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// List handles GET /api/sales
func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	filter := domain.SalesFilter{GoodsName: r.URL.Query().Get("goods_name")}
	if start, err := time.Parse(dateLayout, r.URL.Query().Get("date_start")); err == nil {
		filter.DateStart = &start
	}
	if end, err := time.Parse(dateLayout, r.URL.Query().Get("date_end")); err == nil {
		filter.DateEnd = &end
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		filter.Offset = offset
	}

	result, err := h.listHandler.Handle(r.Context(), query.ListSalesQuery{UserID: userID, Filter: filter})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Get handles GET /api/sales/{id}
func (h *SalesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	saleID, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	sale, err := h.getHandler.Handle(r.Context(), query.GetSaleQuery{UserID: userID, SaleID: saleID})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, sale)
}

// Record handles POST /api/sales
func (h *SalesHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		GoodsID  uint   `json:"goods_id"`
		Quantity int    `json:"quantity"`
		SaleDate string `json:"sale_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RecordSaleCommand{
		UserID:   userID,
		GoodsID:  req.GoodsID,
		Quantity: req.Quantity,
	}
	if req.SaleDate != "" {
		saleDate, err := time.Parse(dateLayout, req.SaleDate)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid sale_date, expected YYYY-MM-DD")
			return
		}
		cmd.SaleDate = saleDate
	}

	sale, err := h.recordHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, sale)
}

// Update handles PUT /api/sales/{id}
func (h *SalesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	saleID, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	var req struct {
		Quantity *int    `json:"quantity"`
		SaleDate *string `json:"sale_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateSaleCommand{UserID: userID, SaleID: saleID, Quantity: req.Quantity}
	if req.SaleDate != nil {
		saleDate, err := time.Parse(dateLayout, *req.SaleDate)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid sale_date, expected YYYY-MM-DD")
			return
		}
		cmd.SaleDate = &saleDate
	}

	sale, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, sale)
}

// Delete handles DELETE /api/sales/{id}
func (h *SalesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	saleID, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteSaleCommand{UserID: userID, SaleID: saleID}); err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Sale deleted successfully"})
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func (h *SalesHandler) respondDomainError(w http.ResponseWriter, err error) {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		h.respondJSON(w, http.StatusConflict, map[string]interface{}{
			"error":     stockErr.Error(),
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, goodsdomain.ErrNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *SalesHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *SalesHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all sales routes behind authentication
func (h *SalesHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/sales", h.metricsMiddleware("/api/sales", userhttp.AuthMiddleware(h.List))).Methods("GET")
	router.HandleFunc("/api/sales", h.metricsMiddleware("/api/sales", userhttp.AuthMiddleware(h.Record))).Methods("POST")
	router.HandleFunc("/api/sales/{id}", h.metricsMiddleware("/api/sales/{id}", userhttp.AuthMiddleware(h.Get))).Methods("GET")
	router.HandleFunc("/api/sales/{id}", h.metricsMiddleware("/api/sales/{id}", userhttp.AuthMiddleware(h.Update))).Methods("PUT")
	router.HandleFunc("/api/sales/{id}", h.metricsMiddleware("/api/sales/{id}", userhttp.AuthMiddleware(h.Delete))).Methods("DELETE")
}
