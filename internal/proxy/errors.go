package proxy

import (
	"encoding/json"
	"net/http"
)

// Error kinds surfaced to callers. Every failure on the request path maps to
// exactly one of these; nothing propagates past the handler boundary.
const (
	KindMissingAPIKey = "missing_api_key"
	KindAPIError      = "api_error"
	KindProxyError    = "proxy_error"
)

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorEnvelope{
		Error:   kind,
		Message: message,
		Status:  status,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRawJSON writes a payload already known to be valid JSON without
// re-encoding it, so cached bytes go out exactly as stored.
func writeRawJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
