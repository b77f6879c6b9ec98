package middleware

import "net/http"

const (
	allowedMethods = "GET, POST, OPTIONS, PUT, DELETE"
	allowedHeaders = "X-API-Key, Content-Type, Authorization"
)

// CORS attaches permissive cross-origin headers to every response and
// answers preflight OPTIONS requests with 204 and no body.
func CORS() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", allowedMethods)
			h.Set("Access-Control-Allow-Headers", allowedHeaders)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
