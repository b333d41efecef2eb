package service

import (
	"context"
	"errors"

	"github.com/eaglebank/eaglebank.go/lib/security"
	"github.com/eaglebank/eaglebank.go/lib/tokens"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

// Domain errors. Controllers translate these into the matching
// responses.ErrorResponse; anything else becomes a 500.
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrAccountNotFound        = errors.New("account not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrDuplicateUser          = errors.New("username or email already taken")
	ErrUserHasAccounts        = errors.New("user still owns accounts")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrMinimumBalance         = errors.New("opening balance below the required minimum")
	ErrBadCredentials         = errors.New("bad auth")
)

type BankService struct {
	Config *Config
	DB     *bun.DB
	Logger *lecho.Logger
}

// GenerateToken verifies the credentials and issues a signed access token
// carrying the username as subject.
func (svc *BankService) GenerateToken(ctx context.Context, username, password string) (accessToken string, err error) {
	user, err := svc.FindUserByUsername(ctx, username)
	if err != nil {
		return "", ErrBadCredentials
	}
	if !security.VerifyPassword(user.Password, password) {
		return "", ErrBadCredentials
	}

	return tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, user)
}
