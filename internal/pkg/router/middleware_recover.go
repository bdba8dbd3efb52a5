package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/ligtascommute/backend/internal/pkg/stacktrace"
)

func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				paths := stacktrace.InternalPaths(stack)
				if len(paths) == 0 {
					slog.ErrorContext(r.Context(), "server: panic recovered", "panic", rvr, "stack", string(stack))
				} else {
					slog.ErrorContext(r.Context(), "server: panic recovered", "panic", rvr, "stack", paths)
				}
				writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
