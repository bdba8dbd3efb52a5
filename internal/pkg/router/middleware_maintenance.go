package router

import (
	"net/http"
	"strings"

	"github.com/ligtascommute/backend/internal/pkg/config"
)

// middlewareMaintenance rejects requests to endpoints listed under the
// "app.maintenance.endpoints" config key, formatted as "METHOD /path".
func middlewareMaintenance(cfg config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg == nil {
				next.ServeHTTP(w, r)
				return
			}

			current := r.Method + " " + matchedRoutePath(r)
			for _, e := range cfg.GetArray("app.maintenance.endpoints") {
				if strings.EqualFold(strings.TrimSpace(e), current) {
					writeJSON(w, errorResponse{Message: "This endpoint is under maintenance"}, http.StatusServiceUnavailable)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
