package router

import (
	"net/http"

	"shoe-store/internal/catalog"
	"shoe-store/internal/handler"
	"shoe-store/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	pageHandler *handler.PageHandler,
	shoeHandler *handler.ShoeHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Storefront pages. "/" also catches unknown paths and renders the 404 page.
	mux.HandleFunc("/", pageHandler.Listing)
	for _, s := range catalog.Sections() {
		mux.HandleFunc(s.Href(), pageHandler.Listing)
	}
	mux.HandleFunc("/shoe/", pageHandler.Detail)

	// Catalogue API
	shoeRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/shoes" && r.URL.Path != "/api/shoes/" {
			shoeHandler.GetBySlug(w, r)
			return
		}
		if r.Method == http.MethodPost {
			shoeHandler.Create(w, r)
			return
		}
		shoeHandler.List(w, r)
	}
	mux.HandleFunc("/api/shoes", shoeRouteHandler)
	mux.HandleFunc("/api/shoes/", shoeRouteHandler)
	mux.HandleFunc("/api/", shoeHandler.NotFound)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
