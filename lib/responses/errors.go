package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var ForbiddenError = ErrorResponse{
	Error:          true,
	Code:           3,
	Message:        "forbidden: you can only access your own data",
	HttpStatusCode: 403,
}

var UserNotFoundError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "user not found",
	HttpStatusCode: 404,
}

// AccountNotFoundError covers both a missing account and an account owned
// by somebody else, so account numbers can not be probed for existence.
var AccountNotFoundError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "account not found",
	HttpStatusCode: 404,
}

var TransactionNotFoundError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "transaction not found",
	HttpStatusCode: 404,
}

var InvalidAmountError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "amount must be greater than zero",
	HttpStatusCode: 400,
}

var InvalidTransactionTypeError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "transaction type must be deposit or withdrawal",
	HttpStatusCode: 400,
}

var NotEnoughBalanceError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "insufficient funds",
	HttpStatusCode: 400,
}

var MinimumBalanceError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "opening balance is below the required minimum",
	HttpStatusCode: 400,
}

var DuplicateUserError = ErrorResponse{
	Error:          true,
	Code:           5,
	Message:        "username or email is already taken",
	HttpStatusCode: 409,
}

var UserHasAccountsError = ErrorResponse{
	Error:          true,
	Code:           5,
	Message:        "cannot delete a user that still owns accounts",
	HttpStatusCode: 409,
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}

// auth failures are expected noise, everything else is worth reporting
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	body, ok := he.Message.(echo.Map)
	if !ok {
		return true
	}
	return body["code"] != BadAuthError.Code
}
