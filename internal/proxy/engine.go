package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"relaygate/internal/cache"
	"relaygate/internal/logging"
	"relaygate/internal/metrics"
	"relaygate/internal/upstream"
)

// Fetcher issues one keyed GET against the upstream API.
type Fetcher interface {
	Fetch(ctx context.Context, url, apiKey string) ([]byte, error)
}

// Engine translates one inbound request into one upstream call or a cache
// hit. It is mounted under the configured path prefix and forwards the
// inbound path and query to BaseURL verbatim, with the resolved API key
// attached server-side.
type Engine struct {
	BaseURL string
	APIKey  string
	TTL     time.Duration
	Store   cache.Store
	Fetcher Fetcher
	Logger  logging.Logger

	group singleflight.Group
}

func NewEngine(baseURL, apiKey string, ttl time.Duration, store cache.Store, fetcher Fetcher, logger logging.Logger) *Engine {
	return &Engine{
		BaseURL: baseURL,
		APIKey:  apiKey,
		TTL:     ttl,
		Store:   store,
		Fetcher: fetcher,
		Logger:  logger,
	}
}

func (e *Engine) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			if e.Logger != nil {
				e.Logger.Error("panic in proxy handler", "panic", fmt.Sprint(rec), "path", req.URL.Path)
			}
			writeError(rw, http.StatusInternalServerError, KindProxyError, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	if req.Method != http.MethodGet {
		writeError(rw, http.StatusMethodNotAllowed, KindProxyError, "method not allowed; only GET is proxied")
		return
	}

	ctx := req.Context()
	target := e.targetURL(req)

	// The cache key is the exact upstream URL, so identical path+query pairs
	// share one entry.
	if entry, ok := e.Store.Get(ctx, target); ok && entry.Fresh(e.TTL) {
		metrics.IncCacheHit()
		writeRawJSON(rw, http.StatusOK, entry.Payload)
		return
	}

	apiKey := req.Header.Get("X-API-Key")
	if apiKey == "" {
		apiKey = e.APIKey
	}
	if apiKey == "" {
		writeError(rw, http.StatusUnauthorized, KindMissingAPIKey,
			"no API key: set the X-API-Key header or configure UPSTREAM_API_KEY")
		return
	}

	metrics.IncCacheMiss()

	// Identical concurrent misses are coalesced into one upstream call; the
	// contract only requires that duplicate fetches stay benign.
	v, err, _ := e.group.Do(target, func() (any, error) {
		return e.fetchAndStore(ctx, target, apiKey)
	})
	if err != nil {
		e.writeFailure(rw, req, err)
		return
	}

	writeRawJSON(rw, http.StatusOK, v.([]byte))
}

func (e *Engine) fetchAndStore(ctx context.Context, target, apiKey string) ([]byte, error) {
	body, err := e.Fetcher.Fetch(ctx, target, apiKey)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			metrics.IncUpstreamRequest(strconv.Itoa(apiErr.StatusCode))
		} else {
			metrics.IncUpstreamRequest("error")
		}
		return nil, err
	}
	metrics.IncUpstreamRequest("200")

	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream returned malformed JSON")
	}

	e.Store.Set(ctx, target, body)
	metrics.SetCacheEntries(e.Store.Size(ctx))
	return body, nil
}

func (e *Engine) writeFailure(rw http.ResponseWriter, req *http.Request, err error) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		if e.Logger != nil {
			e.Logger.Error("upstream error", "status", apiErr.StatusCode, "path", req.URL.Path)
		}
		writeError(rw, apiErr.StatusCode, KindAPIError, string(apiErr.Body))
		return
	}

	if e.Logger != nil {
		e.Logger.Error("proxy failure", "err", err.Error(), "path", req.URL.Path)
	}
	writeError(rw, http.StatusInternalServerError, KindProxyError, err.Error())
}

// targetURL joins the upstream base with the inbound path and re-encoded
// query. Encode sorts parameters by key; upstream treats the query as an
// unordered set, so ordering carries no meaning.
func (e *Engine) targetURL(req *http.Request) string {
	target := e.BaseURL + req.URL.Path
	if q := req.URL.Query().Encode(); q != "" {
		target += "?" + q
	}
	return target
}
