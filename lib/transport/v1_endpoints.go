package transport

import (
	"github.com/eaglebank/eaglebank.go/controllers"
	"github.com/eaglebank/eaglebank.go/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterV1Endpoints(svc *service.BankService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	userCtrl := controllers.NewUserController(svc)
	authCtrl := controllers.NewAuthController(svc)
	accountCtrl := controllers.NewAccountController(svc)
	transactionCtrl := controllers.NewTransactionController(svc)

	// registration and login are the only unauthenticated routes
	e.POST("/v1/users", userCtrl.CreateUser, strictRateLimitMiddleware, logMw)
	e.POST("/v1/auth/login", authCtrl.Login, strictRateLimitMiddleware, logMw)

	secured.GET("/v1/users/:id", userCtrl.GetUser)
	secured.PATCH("/v1/users/:id", userCtrl.UpdateUser)
	secured.DELETE("/v1/users/:id", userCtrl.DeleteUser)

	secured.POST("/v1/accounts", accountCtrl.CreateAccount)
	secured.GET("/v1/accounts", accountCtrl.ListAccounts)
	secured.GET("/v1/accounts/:accountNumber", accountCtrl.GetAccount)
	secured.PATCH("/v1/accounts/:accountNumber", accountCtrl.UpdateAccount)
	secured.DELETE("/v1/accounts/:accountNumber", accountCtrl.DeleteAccount)

	securedWithStrictRateLimit.POST("/v1/accounts/:accountNumber/transactions", transactionCtrl.CreateTransaction)
	secured.GET("/v1/accounts/:accountNumber/transactions", transactionCtrl.ListTransactions)
	secured.GET("/v1/accounts/:accountNumber/transactions/:id", transactionCtrl.GetTransaction)
}
