package middleware

import (
	"event-booking-api/core/cache"
	"event-booking-api/core/constants"
	"event-booking-api/core/controller"
	"event-booking-api/core/errors"
	"event-booking-api/core/logger"
	"event-booking-api/core/utils"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	cache cache.Cache
}

func NewMiddleware(cache cache.Cache) *Middleware {
	return &Middleware{cache: cache}
}

// AuthMiddleware rejects requests without a valid, non-blacklisted access
// token and stores the parsed claims in the echo context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, httpErr := m.resolveClaims(c)
			if httpErr != nil {
				return httpErr
			}
			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// OptionalAuthMiddleware resolves claims when a token is present but lets
// anonymous requests through. Endpoints whose policy depends on who is
// calling (event submission, owner lookup) use this.
func (m *Middleware) OptionalAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			claims, httpErr := m.resolveClaims(c)
			if httpErr != nil {
				return httpErr
			}
			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// AdminMiddleware requires AuthMiddleware to have run first.
func (m *Middleware) AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData := c.Get(constants.ContextTokenData)
			claims, ok := tokenData.(*utils.TokenClaims)
			if !ok || claims == nil {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Authentication required")
			}
			if !claims.IsAdmin {
				return controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "Access denied. Admin privileges required")
			}
			return next(c)
		}
	}
}

func (m *Middleware) resolveClaims(c echo.Context) (*utils.TokenClaims, *echo.HTTPError) {
	token, err := utils.GetTokenFromHeader(c)
	if err != nil {
		return nil, controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrMissingAuthorizationHeader, "Authentication required")
	}

	blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
	if err != nil {
		logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted:Error:", err)
		return nil, controller.NewErrorResponse(http.StatusInternalServerError, errors.ErrInternalServer, "Failed to verify token")
	}
	if blacklisted {
		return nil, controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Invalid token")
	}

	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return nil, controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Invalid token")
	}
	if claims.Scope != constants.ScopeTokenAccess {
		return nil, controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Invalid token scope")
	}

	return claims, nil
}
