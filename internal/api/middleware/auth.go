package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shoply/catalog-system/internal/api/metrics"
	"github.com/shoply/catalog-system/internal/core/domain"
	"github.com/shoply/catalog-system/internal/core/ports"
)

// CookieName is the cookie carrying the bearer token for browser clients.
const CookieName = "token"

const contextUserKey = "user"

// TokenVerifier checks a bearer token and returns the bound user id.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// tokenSources is the fixed priority order for extracting the bearer token
// from a request. The first source yielding a value wins.
var tokenSources = []func(echo.Context) string{
	fromCookie,
	fromAuthorizationHeader,
	fromFormField,
	fromQueryParam,
}

func fromCookie(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func fromAuthorizationHeader(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func fromFormField(c echo.Context) string {
	return c.FormValue(CookieName)
}

func fromQueryParam(c echo.Context) string {
	return c.QueryParam(CookieName)
}

// ExtractToken returns the request's bearer token, or "" when absent.
func ExtractToken(c echo.Context) string {
	for _, source := range tokenSources {
		if token := source(c); token != "" {
			return token
		}
	}
	return ""
}

// RequireAuth verifies the bearer token, loads the authenticated user
// (password hash excluded), and injects it into the request context.
// Every failure path is fail-closed; the HTML redirect below is a
// presentation choice for browsers, not a policy relaxation.
func RequireAuth(verifier TokenVerifier, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c)
			if token == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return reject(c)
			}

			userID, err := verifier.VerifyToken(token)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, domain.ErrTokenExpired) {
					reason = "expired_token"
				}
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				return reject(c)
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				// A valid token for a vanished user is still a rejection.
				log.Warn().Str("user_id", userID).Err(err).Msg("token user not found")
				metrics.AuthFailuresTotal.WithLabelValues("unknown_user").Inc()
				return reject(c)
			}

			user.PasswordHash = ""
			c.Set(contextUserKey, user)
			return next(c)
		}
	}
}

func reject(c echo.Context) error {
	if WantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
}

// UserFromContext returns the authenticated user attached by RequireAuth,
// or nil when the request was not authenticated.
func UserFromContext(c echo.Context) *domain.User {
	user, _ := c.Get(contextUserKey).(*domain.User)
	return user
}

// WantsHTML reports whether the client's content negotiation prefers an
// HTML page over a JSON body.
func WantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), echo.MIMETextHTML)
}
