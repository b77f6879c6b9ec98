package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"relaygate/internal/logging"
)

// IPFilter blocks requests whose client IP falls inside any of the given
// CIDR ranges. With no ranges configured it is a no-op.
func IPFilter(logger logging.Logger, cidrs []string) (Middleware, error) {
	if len(cidrs) == 0 {
		return func(next http.Handler) http.Handler { return next }, nil
	}

	prefixes := make([]netip.Prefix, 0, len(cidrs))
	for _, c := range cidrs {
		p, err := netip.ParsePrefix(c)
		if err != nil {
			return nil, err
		}
		prefixes = append(prefixes, p)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr, ok := clientAddr(r)
			if ok {
				for _, p := range prefixes {
					if p.Contains(addr) {
						if logger != nil {
							logger.Info("ip blocked", "ip", addr.String(), "path", r.URL.Path)
						}
						http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
						return
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}

func clientAddr(r *http.Request) (netip.Addr, bool) {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if addr, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return addr, true
		}
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		host = h
	}
	addr, err := netip.ParseAddr(host)
	return addr, err == nil
}
