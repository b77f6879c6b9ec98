package proxy

import (
	"net/http"
	"time"

	"relaygate/internal/cache"
	"relaygate/internal/logging"
	"relaygate/internal/metrics"
)

type healthResponse struct {
	Status           string `json:"status"`
	Timestamp        string `json:"timestamp"`
	CacheSize        int    `json:"cache_size"`
	Port             int    `json:"port"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

type clearResponse struct {
	Message string `json:"message"`
	Size    int    `json:"size"`
}

func HealthHandler(store cache.Store, port int, apiKeyConfigured bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:           "ok",
			Timestamp:        time.Now().UTC().Format(time.RFC3339),
			CacheSize:        store.Size(r.Context()),
			Port:             port,
			APIKeyConfigured: apiKeyConfigured,
		})
	}
}

// CacheClearHandler empties the response cache. It is deliberately
// unauthenticated to match the reference behavior; the builder logs a
// warning about it at startup.
func CacheClearHandler(store cache.Store, logger logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, KindProxyError, "use POST to clear the cache")
			return
		}

		size := store.Clear(r.Context())
		metrics.SetCacheEntries(size)
		if logger != nil {
			logger.Info("cache cleared", "remote", r.RemoteAddr)
		}

		writeJSON(w, http.StatusOK, clearResponse{
			Message: "cache cleared",
			Size:    size,
		})
	}
}
