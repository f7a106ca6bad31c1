package router

import (
	"event-booking-api/core/middleware"
	"event-booking-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	Controller *controller.AuthController
}

func NewAuthRouter(ctrl *controller.AuthController) *AuthRouter {
	return &AuthRouter{Controller: ctrl}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	auth := v1.Group("/auth")

	auth.POST("/register", r.Controller.Register)
	auth.POST("/login", r.Controller.Login)
	auth.POST("/refresh", r.Controller.RefreshToken)
	auth.GET("/google/url", r.Controller.GoogleAuthURL)
	auth.GET("/google/callback", r.Controller.GoogleCallback)

	auth.POST("/logout", r.Controller.Logout, mw.AuthMiddleware())
	auth.GET("/me", r.Controller.Me, mw.AuthMiddleware())
}
