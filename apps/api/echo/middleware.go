package echoapi

import (
	"github.com/labstack/echo/v4"
)

// authnMiddleware rejects any request without a verifiable token.
// Every failure mode (missing, tampered, expired, bad cookie signature)
// collapses to the same 401; callers learn nothing about the cause.
func authnMiddleware(sess *session) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, err := sess.extractToken(ctx)
			if err != nil {
				return errUnauthorized
			}
			claims, err := sess.codec.Decode(token)
			if err != nil {
				return errUnauthorized
			}
			ctx.Set(contextClaimsKey, claims)
			return next(ctx)
		}
	}
}

// adminMiddleware gates a route to ADMIN identities. It must be composed
// after authnMiddleware; without claims in context it rejects with 401,
// never 403.
func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if !claims.IsAdmin() {
				return errHTTPForbidden
			}
			return next(ctx)
		}
	}
}
