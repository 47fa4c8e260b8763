package auth

import (
	"github.com/labstack/echo/v4"

	"go-assistant-api/modules/auth/controller"
	"go-assistant-api/modules/auth/router"
)

func Init(e *echo.Echo) {
	authController := controller.NewAuthController()
	router.NewAuthRouter(authController).Setup(e)
}
