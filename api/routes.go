package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"showdeck/handlers"
)

// corsMiddleware handles CORS for API routes
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Register mounts API endpoints onto the provided router. The limiter is
// optional; pass nil to disable rate limiting (tests do).
func Register(
	r *mux.Router,
	showsHandler *handlers.ShowsHandler,
	searchHandler *handlers.SearchHandler,
	limiter *IPRateLimiter,
) {
	api := r.PathPrefix("/api").Subrouter()

	api.Use(corsMiddleware)
	if limiter != nil {
		api.Use(RateLimitMiddleware(limiter))
	}

	// OPTIONS is allowed on every route so preflights reach the CORS
	// middleware, which answers them before the handler runs.
	// /shows/filter must register before /shows/{id} so the literal path
	// wins the match.
	api.HandleFunc("/shows", showsHandler.List).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/shows/filter", showsHandler.Filter).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/shows/{id}", showsHandler.Detail).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/shows/{id}/episodes", showsHandler.Episodes).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/seasons/{id}/episodes", showsHandler.SeasonEpisodes).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/episodes/{id}", showsHandler.Episode).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/search", searchHandler.Search).Methods(http.MethodGet, http.MethodOptions)
}
