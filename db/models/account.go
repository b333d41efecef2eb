package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account : Bank Account Model
type Account struct {
	ID            int64           `bun:",pk,autoincrement"`
	AccountNumber string          `bun:",notnull,unique"`
	SortCode      string          `bun:",notnull,unique"`
	Name          string
	AccountType   string          `bun:",notnull"`
	Balance       decimal.Decimal `bun:"type:decimal(13,2),notnull"`
	UserID        int64           `bun:",notnull"`
	User          *User           `bun:"rel:belongs-to,join:user_id=id"`
	CreatedAt     time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
}
