package controller

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"

	"go-assistant-api/core/config"
	"go-assistant-api/core/controller"
	"go-assistant-api/core/errors"
	"go-assistant-api/core/logger"
	"go-assistant-api/core/utils"
	"go-assistant-api/modules/auth/dto"
)

// AuthController issues API bearer tokens. The assistant's host application
// owns user identity; this API only verifies a shared client secret.
type AuthController struct {
	controller.BaseController
}

func NewAuthController() *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
	}
}

// IssueToken handles POST /auth/token
// @Summary Exchange the client secret for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Client credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /public/auth/token [post]
func (c *AuthController) IssueToken(ctx echo.Context) error {
	var req dto.TokenRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	cfg := config.Get()
	if cfg.Auth.ClientSecret == "" ||
		subtle.ConstantTimeCompare([]byte(req.ClientSecret), []byte(cfg.Auth.ClientSecret)) != 1 {
		return c.Unauthorized(errors.ErrUnauthorized, "Invalid client credentials")
	}

	token, err := utils.GenerateToken(req.ClientID)
	if err != nil {
		logger.Error("AuthController:IssueToken:GenerateToken:Error", "error", err)
		return c.InternalServerError(errors.ErrInternalServer, "Failed to issue token")
	}

	return c.SuccessResponse(ctx, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(cfg.Auth.TokenTTL.Seconds()),
	}, "Token issued")
}
