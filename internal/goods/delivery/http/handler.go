package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/warungio/stockpilot/internal/goods/domain"
	"github.com/warungio/stockpilot/internal/goods/usecase/command"
	"github.com/warungio/stockpilot/internal/goods/usecase/query"
	userhttp "github.com/warungio/stockpilot/internal/user/delivery/http"
)

// GoodsHandler handles HTTP requests for goods
type GoodsHandler struct {
	createHandler *command.CreateGoodsHandler
	updateHandler *command.UpdateGoodsHandler
	deleteHandler *command.DeleteGoodsHandler
	getHandler    *query.GetGoodsHandler
	listHandler   *query.ListGoodsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewGoodsHandler creates a new goods handler
func NewGoodsHandler(repo domain.GoodsRepository) *GoodsHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goods_requests_total",
			Help: "Total number of requests to goods endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goods_request_duration_seconds",
			Help:    "Duration of goods endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &GoodsHandler{
		createHandler:  command.NewCreateGoodsHandler(repo),
		updateHandler:  command.NewUpdateGoodsHandler(repo),
		deleteHandler:  command.NewDeleteGoodsHandler(repo),
		getHandler:     query.NewGetGoodsHandler(repo),
		listHandler:    query.NewListGoodsHandler(repo),
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

func (h *GoodsHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// List handles GET /api/goods
func (h *GoodsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	q := query.ListGoodsQuery{
		UserID: userID,
		Search: r.URL.Query().Get("search"),
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		q.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		q.Offset = offset
	}

	result, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Get handles GET /api/goods/{id}
func (h *GoodsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	goodsID, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid goods ID")
		return
	}

	goods, err := h.getHandler.Handle(r.Context(), query.GetGoodsQuery{UserID: userID, GoodsID: goodsID})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, goods)
}

// Create handles POST /api/goods
func (h *GoodsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		Name          string  `json:"name"`
		Category      string  `json:"category"`
		Price         float64 `json:"price"`
		StockQuantity int     `json:"stock_quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goods, err := h.createHandler.Handle(r.Context(), command.CreateGoodsCommand{
		UserID:        userID,
		Name:          req.Name,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, goods)
}

// Update handles PUT /api/goods/{id}
func (h *GoodsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	goodsID, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid goods ID")
		return
	}

	var req struct {
		Name          *string  `json:"name"`
		Category      *string  `json:"category"`
		Price         *float64 `json:"price"`
		StockQuantity *int     `json:"stock_quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goods, err := h.updateHandler.Handle(r.Context(), command.UpdateGoodsCommand{
		UserID:        userID,
		GoodsID:       goodsID,
		Name:          req.Name,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, goods)
}

// Delete handles DELETE /api/goods/{id}
func (h *GoodsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	goodsID, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid goods ID")
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteGoodsCommand{UserID: userID, GoodsID: goodsID}); err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Goods deleted successfully"})
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func (h *GoodsHandler) respondDomainError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	h.respondError(w, http.StatusBadRequest, err.Error())
}

func (h *GoodsHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *GoodsHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all goods routes behind authentication
func (h *GoodsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/goods", h.metricsMiddleware("/api/goods", userhttp.AuthMiddleware(h.List))).Methods("GET")
	router.HandleFunc("/api/goods", h.metricsMiddleware("/api/goods", userhttp.AuthMiddleware(h.Create))).Methods("POST")
	router.HandleFunc("/api/goods/{id}", h.metricsMiddleware("/api/goods/{id}", userhttp.AuthMiddleware(h.Get))).Methods("GET")
	router.HandleFunc("/api/goods/{id}", h.metricsMiddleware("/api/goods/{id}", userhttp.AuthMiddleware(h.Update))).Methods("PUT")
	router.HandleFunc("/api/goods/{id}", h.metricsMiddleware("/api/goods/{id}", userhttp.AuthMiddleware(h.Delete))).Methods("DELETE")
}
