package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/warungio/stockpilot/internal/forecast/usecase/query"
	goodsdomain "github.com/warungio/stockpilot/internal/goods/domain"
	userhttp "github.com/warungio/stockpilot/internal/user/delivery/http"
)

// ForecastHandler handles HTTP requests for restock forecasts
type ForecastHandler struct {
	getHandler *query.GetForecastHandler
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(getHandler *query.GetForecastHandler) *ForecastHandler {
	return &ForecastHandler{getHandler: getHandler}
}

// Get handles GET /api/forecast/{goods_id}
func (h *ForecastHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	goodsID, err := strconv.ParseUint(mux.Vars(r)["goods_id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid goods ID")
		return
	}

	q := query.GetForecastQuery{UserID: userID, GoodsID: uint(goodsID)}
	if days, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil {
		q.HorizonDays = days
	}

	result, err := h.getHandler.Handle(r.Context(), q)
	if err != nil {
		if errors.Is(err, goodsdomain.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *ForecastHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *ForecastHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the forecast routes behind authentication
func (h *ForecastHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/forecast/{goods_id}", userhttp.AuthMiddleware(h.Get)).Methods("GET")
}
