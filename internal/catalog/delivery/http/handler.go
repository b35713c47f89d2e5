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

	"github.com/medeu/storefront/internal/catalog/domain"
	"github.com/medeu/storefront/internal/catalog/usecase/command"
	"github.com/medeu/storefront/internal/catalog/usecase/query"
	userhttp "github.com/medeu/storefront/internal/user/delivery/http"
	"github.com/medeu/storefront/pkg/cache"
)

// CatalogHandler handles HTTP requests for brands and products
type CatalogHandler struct {
	createBrandHandler   *command.CreateBrandHandler
	createProductHandler *command.CreateProductHandler
	updateStockHandler   *command.UpdateStockHandler

	getBrandHandler   *query.GetBrandHandler
	listBrandsHandler *query.ListBrandsHandler
	getProductHandler *query.GetProductHandler

	cache *cache.Cache

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCatalogHandler creates a new catalog handler. The cache may be nil.
func NewCatalogHandler(brands domain.BrandRepository, products domain.ProductRepository, c *cache.Cache) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to catalog service",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CatalogHandler{
		createBrandHandler:   command.NewCreateBrandHandler(brands),
		createProductHandler: command.NewCreateProductHandler(products),
		updateStockHandler:   command.NewUpdateStockHandler(products),
		getBrandHandler:      query.NewGetBrandHandler(brands),
		listBrandsHandler:    query.NewListBrandsHandler(brands),
		getProductHandler:    query.NewGetProductHandler(products),
		cache:                c,
		requestCounter:       requestCounter,
		requestLatency:       requestLatency,
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

func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// CreateBrand handles POST /admin/brands (admin only)
func (h *CatalogHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BrandID   string `json:"brand_id"`
		BrandName string `json:"brand_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	brand, err := h.createBrandHandler.Handle(command.CreateBrandCommand{
		BrandID:   req.BrandID,
		BrandName: req.BrandName,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, brand)
}

// GetBrand handles GET /brands/{id}
func (h *CatalogHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid brand ID")
		return
	}

	cacheKey := fmt.Sprintf("catalog:brand:%d", id)
	var cached domain.Brand
	if err := h.cache.GetJSON(r.Context(), cacheKey, &cached); err == nil {
		w.Header().Set("X-Cache", "HIT")
		h.respondJSON(w, http.StatusOK, cached)
		return
	}

	brand, err := h.getBrandHandler.Handle(query.GetBrandQuery{BrandID: uint(id)})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrBrandNotFound) {
			status = http.StatusNotFound
		}
		h.respondError(w, status, err.Error())
		return
	}

	h.cache.SetJSON(r.Context(), cacheKey, brand)
	h.respondJSON(w, http.StatusOK, brand)
}

// ListBrands handles GET /brands
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	brands, err := h.listBrandsHandler.Handle(query.ListBrandsQuery{Limit: limit, Offset: offset})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, brands)
}

// CreateProduct handles POST /admin/products (admin only)
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
		SKU         string  `json:"sku"`
		BrandID     *uint   `json:"brand_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.createProductHandler.Handle(command.CreateProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		SKU:         req.SKU,
		BrandID:     req.BrandID,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, product)
}

// GetProduct handles GET /products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	cacheKey := fmt.Sprintf("catalog:product:%d", id)
	var cached domain.Product
	if err := h.cache.GetJSON(r.Context(), cacheKey, &cached); err == nil {
		w.Header().Set("X-Cache", "HIT")
		h.respondJSON(w, http.StatusOK, cached)
		return
	}

	product, err := h.getProductHandler.Handle(query.GetProductQuery{ProductID: uint(id)})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		h.respondError(w, status, err.Error())
		return
	}

	h.cache.SetJSON(r.Context(), cacheKey, product)
	h.respondJSON(w, http.StatusOK, product)
}

// UpdateStock handles PUT /admin/products/{id}/stock (admin only)
func (h *CatalogHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		Stock int `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.updateStockHandler.Handle(command.UpdateStockCommand{
		ProductID: uint(id),
		Stock:     req.Stock,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		h.respondError(w, status, err.Error())
		return
	}

	h.cache.Invalidate(r.Context(), fmt.Sprintf("catalog:product:%d", id))
	h.respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *CatalogHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/brands", h.metricsMiddleware("/brands", h.ListBrands)).Methods("GET")
	router.HandleFunc("/brands/{id}", h.metricsMiddleware("/brands/{id}", h.GetBrand)).Methods("GET")
	router.HandleFunc("/products/{id}", h.metricsMiddleware("/products/{id}", h.GetProduct)).Methods("GET")

	// Admin routes
	router.HandleFunc("/admin/brands", h.metricsMiddleware("/admin/brands", userhttp.AdminMiddleware(h.CreateBrand))).Methods("POST")
	router.HandleFunc("/admin/products", h.metricsMiddleware("/admin/products", userhttp.AdminMiddleware(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/admin/products/{id}/stock", h.metricsMiddleware("/admin/products/{id}/stock", userhttp.AdminMiddleware(h.UpdateStock))).Methods("PUT")
}
