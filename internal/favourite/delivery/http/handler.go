package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/medeu/storefront/internal/favourite/domain"
	"github.com/medeu/storefront/internal/favourite/usecase/command"
	"github.com/medeu/storefront/internal/favourite/usecase/query"
	userhttp "github.com/medeu/storefront/internal/user/delivery/http"
	"github.com/medeu/storefront/pkg/cache"
)

// FavouriteHandler handles HTTP requests for user favourites
type FavouriteHandler struct {
	addHandler    *command.AddFavouriteHandler
	removeHandler *command.RemoveFavouriteHandler

	listHandler        *query.ListFavouritesHandler
	isFavouriteHandler *query.IsFavouriteHandler

	cache *cache.Cache

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewFavouriteHandler creates a new favourite handler. The publisher and
// cache may be nil.
func NewFavouriteHandler(repo domain.FavouriteRepository, publisher command.EventPublisher, c *cache.Cache) *FavouriteHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favourite_service_requests_total",
			Help: "Total number of requests to favourite service",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "favourite_service_request_duration_seconds",
			Help:    "Duration of favourite service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &FavouriteHandler{
		addHandler:         command.NewAddFavouriteHandler(repo, publisher),
		removeHandler:      command.NewRemoveFavouriteHandler(repo, publisher),
		listHandler:        query.NewListFavouritesHandler(repo),
		isFavouriteHandler: query.NewIsFavouriteHandler(repo),
		cache:              c,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
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

func (h *FavouriteHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListCacheKey is the cache key for a user's favourite list. The kafka
// consumer uses it to invalidate entries when favourite events arrive.
func ListCacheKey(userID uint) string {
	return fmt.Sprintf("favourite:list:%d", userID)
}

// AddFavourite handles POST /favourites
func (h *FavouriteHandler) AddFavourite(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fav, err := h.addHandler.Handle(r.Context(), command.AddFavouriteCommand{
		UserID:    userID,
		ProductID: req.ProductID,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrDuplicateFavourite) {
			status = http.StatusConflict
		}
		h.respondError(w, status, err.Error())
		return
	}

	h.cache.Invalidate(r.Context(), ListCacheKey(userID))
	h.respondJSON(w, http.StatusCreated, fav)
}

// RemoveFavourite handles DELETE /favourites/{productId}
func (h *FavouriteHandler) RemoveFavourite(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productID, err := strconv.ParseUint(mux.Vars(r)["productId"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	err = h.removeHandler.Handle(r.Context(), command.RemoveFavouriteCommand{
		UserID:    userID,
		ProductID: uint(productID),
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		h.respondError(w, status, err.Error())
		return
	}

	h.cache.Invalidate(r.Context(), ListCacheKey(userID))
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Favourite removed"})
}

// ListFavourites handles GET /favourites
func (h *FavouriteHandler) ListFavourites(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var cached []domain.Favourite
	if err := h.cache.GetJSON(r.Context(), ListCacheKey(userID), &cached); err == nil {
		w.Header().Set("X-Cache", "HIT")
		h.respondJSON(w, http.StatusOK, cached)
		return
	}

	favourites, err := h.listHandler.Handle(query.ListFavouritesQuery{UserID: userID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.cache.SetJSON(r.Context(), ListCacheKey(userID), favourites)
	h.respondJSON(w, http.StatusOK, favourites)
}

// IsFavourite handles GET /favourites/{productId}
func (h *FavouriteHandler) IsFavourite(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productID, err := strconv.ParseUint(mux.Vars(r)["productId"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	favourite, err := h.isFavouriteHandler.Handle(query.IsFavouriteQuery{
		UserID:    userID,
		ProductID: uint(productID),
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"favourite": favourite})
}

func (h *FavouriteHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *FavouriteHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all favourite routes. Every route requires auth.
func (h *FavouriteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/favourites", h.metricsMiddleware("/favourites", userhttp.AuthMiddleware(h.ListFavourites))).Methods("GET")
	router.HandleFunc("/favourites", h.metricsMiddleware("/favourites", userhttp.AuthMiddleware(h.AddFavourite))).Methods("POST")
	router.HandleFunc("/favourites/{productId}", h.metricsMiddleware("/favourites/{productId}", userhttp.AuthMiddleware(h.IsFavourite))).Methods("GET")
	router.HandleFunc("/favourites/{productId}", h.metricsMiddleware("/favourites/{productId}", userhttp.AuthMiddleware(h.RemoveFavourite))).Methods("DELETE")
}
