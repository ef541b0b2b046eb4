package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/developia/translation-office/internal/core/ports"
	"github.com/developia/translation-office/internal/core/session"
)

// Identity validates the bearer token, resolves the caller, and binds a
// session scope to the request context for the duration of the request. The
// scope is cleared unconditionally when the request unwinds, so identity can
// never leak into another unit of work.
//
// Tokens with the "system" claim bind a privileged scope instead of a caller;
// they are issued out-of-band for internal maintenance operations.
func Identity(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			scope := session.NewScope()
			defer scope.Clear()

			if system, _ := claims["system"].(bool); system {
				scope.SetPrivileged()
				c.Set("role", "system")
			} else {
				sub, _ := claims["sub"].(string)
				if sub == "" {
					return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
				}
				caller, err := users.FindByID(c.Request().Context(), sub)
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown caller")
				}
				scope.SetCaller(caller)
				c.Set("role", string(caller.Role))
			}

			req := c.Request()
			c.SetRequest(req.WithContext(session.WithScope(req.Context(), scope)))
			return next(c)
		}
	}
}
