package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/warungio/stockpilot/internal/user/domain"
	"github.com/warungio/stockpilot/internal/user/usecase/command"
	"github.com/warungio/stockpilot/internal/user/usecase/query"
)

// UserHandler handles HTTP requests for accounts
type UserHandler struct {
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
	getUserHandler  *query.GetUserHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_requests_total",
			Help: "Total number of requests to user endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_request_duration_seconds",
			Help:    "Duration of user endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &UserHandler{
		registerHandler: command.NewRegisterUserHandler(repo),
		loginHandler:    command.NewLoginUserHandler(repo),
		getUserHandler:  query.NewGetUserHandler(repo),
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username     string `json:"username"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		BusinessName string `json:"business_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.registerHandler.Handle(r.Context(), command.RegisterUserCommand{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		BusinessName: req.BusinessName,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GetProfile handles GET /users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{UserID: userID})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// HealthCheck handles GET /health
func (h *UserHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

func (h *UserHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *UserHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.metricsMiddleware("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", h.metricsMiddleware("/auth/login", h.Login)).Methods("POST")
	router.HandleFunc("/users/me", h.metricsMiddleware("/users/me", AuthMiddleware(h.GetProfile))).Methods("GET")
}

// RegisterHealthCheck registers the health check endpoint
func (h *UserHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}
