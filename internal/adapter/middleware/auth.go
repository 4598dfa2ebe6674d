package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"microcredit-coop/internal/domain/member"
)

const actorKey = "actor"

var errInvalidToken = errors.New("invalid token")

// Auth accepts HS256 bearer tokens whose subject is a 32-hex member id and
// places the resulting member.Actor on the echo context.
// An empty issuer disables the iss check.
func Auth(secret, issuer string) echo.MiddlewareFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authorization must be a bearer token"})
			}

			actor, err := parseActor(parser, strings.TrimSpace(raw), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			SetActor(c, actor)
			return next(c)
		}
	}
}

func parseActor(p *jwt.Parser, raw, secret string) (member.Actor, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := p.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return member.Actor{}, errInvalidToken
	}
	if !reHex32.MatchString(claims.Subject) {
		return member.Actor{}, errInvalidToken
	}
	return member.Actor{MemberID: claims.Subject}, nil
}

// SetActor stores the authenticated member on the context.
func SetActor(c echo.Context, a member.Actor) { c.Set(actorKey, a) }

// ActorFrom returns the actor stored by Auth.
func ActorFrom(c echo.Context) (member.Actor, bool) {
	a, ok := c.Get(actorKey).(member.Actor)
	if !ok || a.MemberID == "" {
		return member.Actor{}, false
	}
	return a, true
}
