package echoapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/account"
	"github.com/shulehub/shule/core/auth"
)

const (
	tokenCookieName  = "token"
	logoutCookieVal  = "logout"
	contextClaimsKey = "identityClaims"
)

// session issues, transports and verifies identity tokens. Tokens travel
// either in the Authorization header or in a signed, httpOnly cookie.
type session struct {
	codec  *auth.Codec
	secret []byte
	ttl    time.Duration
	secure bool
}

func newSession(codec *auth.Codec, conf *core.Config) *session {
	return &session{
		codec:  codec,
		secret: []byte(conf.SecretKey),
		ttl:    conf.Server.JWTExpirationDelta,
		secure: !conf.Debug,
	}
}

// login issues claims for an authenticated identity and attaches the
// session cookie to the response.
func (s *session) login(ctx echo.Context, idt account.Identity) (auth.Claims, string, error) {
	claims := s.codec.NewClaims(idt.ID, idt.Name(), idt.Role, idt.Age, idt.Gender)
	token, err := s.codec.Encode(claims)
	if err != nil {
		return auth.Claims{}, "", err
	}
	s.attachTokenCookie(ctx, token)
	return claims, token, nil
}

func (s *session) attachTokenCookie(ctx echo.Context, token string) {
	ctx.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    auth.SignValue(token, s.secret),
		Path:     "/",
		Expires:  time.Now().Add(s.ttl),
		HttpOnly: true,
		Secure:   s.secure,
	})
}

// clearTokenCookie overwrites the session cookie with a dead value.
// The stored token is not decoded; logout must succeed even with a
// broken or expired cookie.
func (s *session) clearTokenCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    logoutCookieVal,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.secure,
	})
}

// extractToken pulls the raw token off the request: the Authorization
// bearer header wins; the signed cookie is the fallback.
func (s *session) extractToken(ctx echo.Context) (string, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", auth.ErrInvalidToken
		}
		return parts[1], nil
	}

	cookie, err := ctx.Cookie(tokenCookieName)
	if err != nil || cookie.Value == "" || cookie.Value == logoutCookieVal {
		return "", auth.ErrInvalidToken
	}
	return auth.UnsignValue(cookie.Value, s.secret)
}

func getContextClaims(ctx echo.Context) (auth.Claims, error) {
	if claims, ok := ctx.Get(contextClaimsKey).(auth.Claims); ok {
		return claims, nil
	}
	return auth.Claims{}, errUnauthorized
}
