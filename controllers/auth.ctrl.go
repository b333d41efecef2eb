package controllers

import (
	"net/http"

	"github.com/eaglebank/eaglebank.go/lib/responses"
	"github.com/eaglebank/eaglebank.go/lib/service"
	"github.com/labstack/echo/v4"
)

// AuthController : AuthController struct
type AuthController struct {
	svc *service.BankService
}

func NewAuthController(svc *service.BankService) *AuthController {
	return &AuthController{
		svc: svc,
	}
}

type LoginRequestBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponseBody struct {
	Token string `json:"token"`
}

// Login : Exchange username/password for an access token
func (controller *AuthController) Login(c echo.Context) error {
	var body LoginRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load login request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	accessToken, err := controller.svc.GenerateToken(c.Request().Context(), body.Username, body.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
	}

	return c.JSON(http.StatusOK, &LoginResponseBody{
		Token: accessToken,
	})
}
