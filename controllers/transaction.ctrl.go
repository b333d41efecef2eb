package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/eaglebank/eaglebank.go/db/models"
	"github.com/eaglebank/eaglebank.go/lib/responses"
	"github.com/eaglebank/eaglebank.go/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// TransactionController : TransactionController struct
type TransactionController struct {
	svc *service.BankService
}

func NewTransactionController(svc *service.BankService) *TransactionController {
	return &TransactionController{
		svc: svc,
	}
}

type CreateTransactionRequestBody struct {
	Type      string          `json:"type" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

type TransactionResponseBody struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"account_number"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type CreateTransactionResponseBody struct {
	TransactionResponseBody
	Balance decimal.Decimal `json:"balance"`
}

func toTransactionResponse(transaction *models.Transaction, accountNumber string) TransactionResponseBody {
	return TransactionResponseBody{
		ID:            transaction.ID,
		AccountNumber: accountNumber,
		Type:          transaction.Type,
		Amount:        transaction.Amount,
		Reference:     transaction.Reference,
		CreatedAt:     transaction.CreatedAt,
	}
}

// CreateTransaction : Apply a deposit or withdrawal to the caller's account
func (controller *TransactionController) CreateTransaction(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	account, err := controller.svc.FindAccountForUser(c.Request().Context(), c.Param("accountNumber"), userId)
	if err != nil {
		if err == service.ErrAccountNotFound {
			return c.JSON(http.StatusNotFound, responses.AccountNotFoundError)
		}
		c.Logger().Errorf("Failed to fetch account for user %d: %v", userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	var body CreateTransactionRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create transaction request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	transaction, err := controller.svc.ApplyTransaction(c.Request().Context(), account, strings.ToLower(body.Type), body.Amount, body.Reference)
	if err != nil {
		switch err {
		case service.ErrInvalidAmount:
			return c.JSON(http.StatusBadRequest, responses.InvalidAmountError)
		case service.ErrInvalidTransactionType:
			return c.JSON(http.StatusBadRequest, responses.InvalidTransactionTypeError)
		case service.ErrInsufficientFunds:
			return c.JSON(http.StatusBadRequest, responses.NotEnoughBalanceError)
		default:
			c.Logger().Errorf("Failed to apply transaction on account %s: %v", account.AccountNumber, err)
			return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
		}
	}

	return c.JSON(http.StatusCreated, &CreateTransactionResponseBody{
		TransactionResponseBody: toTransactionResponse(transaction, account.AccountNumber),
		Balance:                 account.Balance,
	})
}

// ListTransactions : List the ledger of the caller's account
func (controller *TransactionController) ListTransactions(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	account, err := controller.svc.FindAccountForUser(c.Request().Context(), c.Param("accountNumber"), userId)
	if err != nil {
		if err == service.ErrAccountNotFound {
			return c.JSON(http.StatusNotFound, responses.AccountNotFoundError)
		}
		c.Logger().Errorf("Failed to fetch account for user %d: %v", userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	transactions, err := controller.svc.ListTransactionsForAccount(c.Request().Context(), account.ID)
	if err != nil {
		c.Logger().Errorf("Failed to list transactions for account %s: %v", account.AccountNumber, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := make([]TransactionResponseBody, len(transactions))
	for i := range transactions {
		response[i] = toTransactionResponse(&transactions[i], account.AccountNumber)
	}
	return c.JSON(http.StatusOK, response)
}

// GetTransaction : Fetch a single ledger entry of the caller's account
func (controller *TransactionController) GetTransaction(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	account, err := controller.svc.FindAccountForUser(c.Request().Context(), c.Param("accountNumber"), userId)
	if err != nil {
		if err == service.ErrAccountNotFound {
			return c.JSON(http.StatusNotFound, responses.AccountNotFoundError)
		}
		c.Logger().Errorf("Failed to fetch account for user %d: %v", userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	transactionId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	transaction, err := controller.svc.FindTransactionForAccount(c.Request().Context(), transactionId, account.ID)
	if err != nil {
		if err == service.ErrTransactionNotFound {
			return c.JSON(http.StatusNotFound, responses.TransactionNotFoundError)
		}
		c.Logger().Errorf("Failed to fetch transaction %d: %v", transactionId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, toTransactionResponse(transaction, account.AccountNumber))
}
