package models

import (
	"time"
)

// User : User Model
type User struct {
	ID              int64  `bun:",pk,autoincrement"`
	Username        string `bun:",notnull,unique"`
	Password        string `bun:",notnull"`
	Email           string `bun:",notnull,unique"`
	Name            string
	Phone           string
	AddressLine1    string
	AddressTown     string
	AddressCounty   string
	AddressPostcode string
	CreatedAt       time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
