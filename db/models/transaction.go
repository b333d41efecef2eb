package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction : Ledger Entry Model
//
// Rows are append-only: they are never updated and only removed
// together with their account.
type Transaction struct {
	ID        int64           `bun:",pk,autoincrement"`
	AccountID int64           `bun:",notnull"`
	Account   *Account        `bun:"rel:belongs-to,join:account_id=id"`
	Type      string          `bun:",notnull"`
	Amount    decimal.Decimal `bun:"type:decimal(13,2),notnull"`
	Reference string
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
