package token

import "context"

type authContextKey struct{}

// GetAuth returns the authenticated identity stored in the context, if any.
func GetAuth(ctx context.Context) *Auth {
	auth, ok := ctx.Value(authContextKey{}).(Auth)
	if !ok {
		return nil
	}

	return &auth
}

// SetAuth stores the authenticated identity in the context.
func SetAuth(ctx context.Context, auth Auth) context.Context {
	return context.WithValue(ctx, authContextKey{}, auth)
}

type bearerContextKey struct{}

// GetBearer returns the raw bearer token presented on this request, if any.
// Logout revokes the presented token, so the plaintext has to travel with the
// request context.
func GetBearer(ctx context.Context) string {
	bearer, _ := ctx.Value(bearerContextKey{}).(string)

	return bearer
}

// SetBearer stores the raw bearer token in the context.
func SetBearer(ctx context.Context, bearer string) context.Context {
	return context.WithValue(ctx, bearerContextKey{}, bearer)
}
