package server

import (
	"net/http"

	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/mbaye/ecom-backend/internal/handlers"
	"github.com/mbaye/ecom-backend/internal/httpx"
)

// New constructs the root http.Handler with all routes and middlewares applied.
// Cross-origin access is restricted to the configured origins; all methods and
// headers are allowed for those origins.
func New(db *gorm.DB, corsOrigins []string) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Lightweight DB check; detailed errors stay out of the body.
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ah := handlers.NewAuthHandler(db)
	mux.HandleFunc("POST /register", ah.Register)
	mux.HandleFunc("POST /login", ah.Login)

	ch := handlers.NewCategoryHandler(db)
	mux.HandleFunc("GET /categories", ch.List)
	mux.HandleFunc("POST /categories", ch.Create)
	mux.HandleFunc("PUT /categories/{id}", ch.Update)
	mux.HandleFunc("DELETE /categories/{id}", ch.Delete)

	oh := handlers.NewOfferHandler(db)
	mux.HandleFunc("GET /offers", oh.List)
	mux.HandleFunc("POST /offers", oh.Create)
	mux.HandleFunc("PUT /offers/{id}", oh.Update)
	mux.HandleFunc("DELETE /offers/{id}", oh.Delete)

	ph := handlers.NewProductHandler(db)
	mux.HandleFunc("GET /products", ph.List)
	mux.HandleFunc("POST /products", ph.Create)
	mux.HandleFunc("PUT /products/{id}", ph.Update)
	mux.HandleFunc("DELETE /products/{id}", ph.Delete)

	orh := handlers.NewOrderHandler(db)
	mux.HandleFunc("GET /orders", orh.List)
	mux.HandleFunc("POST /orders", orh.Create)
	mux.HandleFunc("PATCH /orders/{id}", orh.UpdateStatus)
	mux.HandleFunc("DELETE /orders/{id}", orh.Delete)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "Welcome to the eCommerce backend!"})
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(withRecover(withLogging(mux)))
}
