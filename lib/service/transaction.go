package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/eaglebank/eaglebank.go/common"
	"github.com/eaglebank/eaglebank.go/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// ApplyTransaction validates and atomically applies a deposit or withdrawal
// to the account. The ledger insert and the balance update commit together or
// not at all. The balance mutation is a conditional in-database update, so two
// concurrent withdrawals can not both pass the sufficiency check: the second
// one sees zero affected rows and fails with ErrInsufficientFunds.
func (svc *BankService) ApplyTransaction(ctx context.Context, account *models.Account, transactionType string, amount decimal.Decimal, reference string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	switch transactionType {
	case common.TransactionTypeDeposit, common.TransactionTypeWithdrawal:
	default:
		return nil, ErrInvalidTransactionType
	}
	if transactionType == common.TransactionTypeWithdrawal && account.Balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}

	transaction := &models.Transaction{
		AccountID: account.ID,
		Type:      transactionType,
		Amount:    amount,
		Reference: reference,
		CreatedAt: time.Now(),
	}

	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(transaction).Exec(ctx); err != nil {
			return err
		}

		update := tx.NewUpdate().Model((*models.Account)(nil)).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", account.ID)
		if transactionType == common.TransactionTypeDeposit {
			update = update.Set("balance = balance + ?", amount)
		} else {
			update = update.Set("balance = balance - ?", amount).Where("balance >= ?", amount)
		}
		res, err := update.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			// a concurrent withdrawal drained the account first
			return ErrInsufficientFunds
		}

		// re-read so the caller sees the post-transaction balance
		return tx.NewSelect().Model(account).WherePK().Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (svc *BankService) ListTransactionsForAccount(ctx context.Context, accountId int64) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	err := svc.DB.NewSelect().Model(&transactions).Where("account_id = ?", accountId).OrderExpr("id DESC").Limit(100).Scan(ctx)
	return transactions, err
}

func (svc *BankService) FindTransactionForAccount(ctx context.Context, transactionId, accountId int64) (*models.Transaction, error) {
	var transaction models.Transaction

	err := svc.DB.NewSelect().Model(&transaction).Where("id = ? AND account_id = ?", transactionId, accountId).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}
