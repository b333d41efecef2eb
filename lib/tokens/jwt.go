package tokens

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eaglebank/eaglebank.go/db/models"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// UserResolver maps the username carried in a token back to a stored user.
// The numeric user id is deliberately not embedded in the token.
type UserResolver interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type jwtCustomClaims struct {
	jwt.StandardClaims
}

// GenerateAccessToken : Generate Access Token
func GenerateAccessToken(secret []byte, expiryInSeconds int, u *models.User) (string, error) {
	claims := &jwtCustomClaims{
		jwt.StandardClaims{
			Subject:   u.Username,
			ExpiresAt: time.Now().Add(time.Duration(expiryInSeconds) * time.Second).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	t, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return t, nil
}

// Middleware : Authenticate the bearer token and set UserID on the context
func Middleware(secret []byte, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized()
			}

			claims := &jwtCustomClaims{}
			token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid || claims.Subject == "" {
				return unauthorized()
			}

			user, err := users.FindUserByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				return unauthorized()
			}

			c.Set("UserID", user.ID)
			return next(c)
		}
	}
}

func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
		"error":   true,
		"code":    1,
		"message": "bad auth",
	})
}
