package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eaglebank/eaglebank.go/common"
	"github.com/eaglebank/eaglebank.go/db/models"
	"github.com/labstack/gommon/random"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// account number and sort code collisions are rare but their unique indexes
// are the hard guarantee, so inserts are retried a few times with fresh values
const maxAccountNumberAttempts = 5

func (svc *BankService) CreateAccount(ctx context.Context, userId int64, name, accountType string, balance decimal.Decimal) (*models.Account, error) {
	if balance.LessThan(decimal.NewFromInt(svc.Config.MinimumOpeningBalance)) {
		return nil, ErrMinimumBalance
	}
	if accountType == "" {
		accountType = common.AccountTypePersonal
	}

	account := &models.Account{
		Name:        name,
		AccountType: accountType,
		Balance:     balance,
		UserID:      userId,
	}
	var err error
	for i := 0; i < maxAccountNumberAttempts; i++ {
		account.AccountNumber = generateAccountNumber()
		account.SortCode = generateSortCode()
		_, err = svc.DB.NewInsert().Model(account).Exec(ctx)
		if err == nil {
			return account, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
	}
	return nil, err
}

// FindAccountForUser resolves an account number to an account owned by the
// given user. A missing account and an account owned by somebody else are
// indistinguishable to the caller.
func (svc *BankService) FindAccountForUser(ctx context.Context, accountNumber string, userId int64) (*models.Account, error) {
	var account models.Account

	err := svc.DB.NewSelect().Model(&account).Where("account_number = ? AND user_id = ?", accountNumber, userId).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (svc *BankService) ListAccountsForUser(ctx context.Context, userId int64) ([]models.Account, error) {
	accounts := []models.Account{}
	err := svc.DB.NewSelect().Model(&accounts).Where("user_id = ?", userId).OrderExpr("id ASC").Scan(ctx)
	return accounts, err
}

// UpdateAccount persists the mutable account fields; the number, sort code,
// owner and balance never change through this path.
func (svc *BankService) UpdateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	account.UpdatedAt = time.Now()
	_, err := svc.DB.NewUpdate().Model(account).Column("name", "updated_at").WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccount removes the account together with its ledger. Deletion does
// not require a zero balance, only ownership (checked by the caller).
func (svc *BankService) DeleteAccount(ctx context.Context, account *models.Account) error {
	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.Transaction)(nil)).Where("account_id = ?", account.ID).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*models.Account)(nil)).Where("id = ?", account.ID).Exec(ctx)
		return err
	})
}

func generateAccountNumber() string {
	return common.AccountNumberPrefix + random.String(6, random.Numeric)
}

func generateSortCode() string {
	return fmt.Sprintf("%s-%s-%s",
		random.String(2, random.Numeric),
		random.String(2, random.Numeric),
		random.String(2, random.Numeric))
}
