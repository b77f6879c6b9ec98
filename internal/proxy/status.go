package proxy

import (
	_ "embed"
	"net/http"
)

//go:embed status.html
var statusPage []byte

// StatusPageHandler serves the embedded HTML status page at the root path.
// Anything else falling through the mux is a JSON 404 rather than a blank
// stdlib error page.
func StatusPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			writeError(w, http.StatusNotFound, KindProxyError, "no such route: "+r.URL.Path)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(statusPage)
	}
}
