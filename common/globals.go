package common

const (
	AccountTypePersonal = "personal"

	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"

	// Account numbers are "01" followed by 6 random digits.
	AccountNumberPrefix = "01"
)
