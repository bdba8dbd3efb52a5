package router

import (
	"net/http"
	"strings"

	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"github.com/ligtascommute/backend/internal/pkg/uid"
)

const (
	// HeaderCorrelationID carries the correlation id across services.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is honored as a fallback when no correlation id is set.
	HeaderRequestID = "X-Request-ID"

	maxCorrelationIDLen = 128
)

func middlewareCorrelationID(gen uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := normalizeCID(r.Header.Get(HeaderCorrelationID))
			if cid == "" {
				cid = normalizeCID(r.Header.Get(HeaderRequestID))
			}
			if cid == "" {
				cid = gen.Generate()
			}

			w.Header().Set(HeaderCorrelationID, cid)
			next.ServeHTTP(w, r.WithContext(instrument.SetCorrelationID(r.Context(), cid)))
		})
	}
}

func normalizeCID(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxCorrelationIDLen {
		s = s[:maxCorrelationIDLen]
	}

	return s
}
