package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- balances can never go negative, the withdrawal guard is re-checked here
				ALTER TABLE accounts
				ADD CONSTRAINT check_balance_not_negative
				CHECK (balance >= 0);

			-- ledger entries always carry a positive amount
				ALTER TABLE transactions
				ADD CONSTRAINT check_amount_positive
				CHECK (amount > 0);
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
