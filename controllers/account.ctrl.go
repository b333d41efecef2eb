package controllers

import (
	"net/http"
	"time"

	"github.com/eaglebank/eaglebank.go/db/models"
	"github.com/eaglebank/eaglebank.go/lib/responses"
	"github.com/eaglebank/eaglebank.go/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AccountController : AccountController struct
type AccountController struct {
	svc *service.BankService
}

func NewAccountController(svc *service.BankService) *AccountController {
	return &AccountController{
		svc: svc,
	}
}

type CreateAccountRequestBody struct {
	Name        string          `json:"name"`
	AccountType string          `json:"account_type" validate:"omitempty,oneof=personal"`
	Balance     decimal.Decimal `json:"balance"`
}

type UpdateAccountRequestBody struct {
	Name *string `json:"name"`
}

type AccountResponseBody struct {
	AccountNumber string          `json:"account_number"`
	SortCode      string          `json:"sort_code"`
	Name          string          `json:"name"`
	AccountType   string          `json:"account_type"`
	Balance       decimal.Decimal `json:"balance"`
	UserID        int64           `json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toAccountResponse(account *models.Account) *AccountResponseBody {
	return &AccountResponseBody{
		AccountNumber: account.AccountNumber,
		SortCode:      account.SortCode,
		Name:          account.Name,
		AccountType:   account.AccountType,
		Balance:       account.Balance,
		UserID:        account.UserID,
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}
}

// CreateAccount : Open a new account for the caller
func (controller *AccountController) CreateAccount(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	var body CreateAccountRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create account request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	account, err := controller.svc.CreateAccount(c.Request().Context(), userId, body.Name, body.AccountType, body.Balance)
	if err != nil {
		if err == service.ErrMinimumBalance {
			return c.JSON(http.StatusBadRequest, responses.MinimumBalanceError)
		}
		c.Logger().Errorf("Failed to create account for user %d: %v", userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// ListAccounts : List the caller's accounts
func (controller *AccountController) ListAccounts(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	accounts, err := controller.svc.ListAccountsForUser(c.Request().Context(), userId)
	if err != nil {
		c.Logger().Errorf("Failed to list accounts for user %d: %v", userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := make([]AccountResponseBody, len(accounts))
	for i := range accounts {
		response[i] = *toAccountResponse(&accounts[i])
	}
	return c.JSON(http.StatusOK, response)
}

// GetAccount : Fetch one of the caller's accounts
func (controller *AccountController) GetAccount(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	account, err := controller.svc.FindAccountForUser(c.Request().Context(), c.Param("accountNumber"), userId)
	if err != nil {
		if err == service.ErrAccountNotFound {
			return c.JSON(http.StatusNotFound, responses.AccountNotFoundError)
		}
		c.Logger().Errorf("Failed to fetch account for user %d: %v", userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// UpdateAccount : Rename one of the caller's accounts
func (controller *AccountController) UpdateAccount(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	account, err := controller.svc.FindAccountForUser(c.Request().Context(), c.Param("accountNumber"), userId)
	if err != nil {
		if err == service.ErrAccountNotFound {
			return c.JSON(http.StatusNotFound, responses.AccountNotFoundError)
		}
		c.Logger().Errorf("Failed to fetch account for user %d: %v", userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	var body UpdateAccountRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load update account request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if body.Name != nil {
		account.Name = *body.Name
	}

	account, err = controller.svc.UpdateAccount(c.Request().Context(), account)
	if err != nil {
		c.Logger().Errorf("Failed to update account for user %d: %v", userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// DeleteAccount : Close one of the caller's accounts and drop its ledger
func (controller *AccountController) DeleteAccount(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	account, err := controller.svc.FindAccountForUser(c.Request().Context(), c.Param("accountNumber"), userId)
	if err != nil {
		if err == service.ErrAccountNotFound {
			return c.JSON(http.StatusNotFound, responses.AccountNotFoundError)
		}
		c.Logger().Errorf("Failed to fetch account for user %d: %v", userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	if err := controller.svc.DeleteAccount(c.Request().Context(), account); err != nil {
		c.Logger().Errorf("Failed to delete account %s: %v", account.AccountNumber, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.NoContent(http.StatusNoContent)
}
