package router

import (
	"net/http"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/ligtascommute/backend/internal/pkg/token"
)

func middlewareAuthentication(verifier token.Verifier, public map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicEndpoint(public, r) {
				next.ServeHTTP(w, r)
				return
			}

			p := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") || p[1] == "" {
				writeJSON(w, errorResponse{Message: "Unauthenticated"}, http.StatusUnauthorized)
				return
			}

			auth, err := verifier.Verify(r.Context(), p[1])
			if err != nil {
				writeJSON(w, errorResponse{Message: "Unauthenticated"}, http.StatusUnauthorized)
				return
			}

			ctx := token.SetAuth(r.Context(), auth)
			ctx = token.SetBearer(ctx, p[1])
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func middlewareAuthorization(enforcer *casbin.Enforcer, public map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if enforcer == nil || isPublicEndpoint(public, r) {
				next.ServeHTTP(w, r)
				return
			}

			auth := token.GetAuth(r.Context())
			if auth == nil {
				writeJSON(w, errorResponse{Message: "Unauthenticated"}, http.StatusUnauthorized)
				return
			}

			ok, err := enforcer.Enforce(auth.Role, matchedRoutePath(r), r.Method)
			if err != nil || !ok {
				writeJSON(w, errorResponse{Message: "Permission denied"}, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicEndpoint(public map[string]map[string]struct{}, r *http.Request) bool {
	paths, ok := public[r.Method]
	if !ok {
		return false
	}
	_, ok = paths[matchedRoutePath(r)]

	return ok
}
