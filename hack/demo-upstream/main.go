// Command demo-upstream is a keyed stub API for exercising relaygate
// end to end: run it, point UPSTREAM_BASE_URL at it, and watch cache
// hits on repeated requests.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

func main() {
	http.HandleFunc("/v1/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"missing key"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"path":   r.URL.Path,
			"query":  r.URL.RawQuery,
			"served": time.Now().Format(time.RFC3339Nano),
		})
	})

	log.Println("demo upstream on :9000")
	log.Fatal(http.ListenAndServe(":9000", nil))
}
