package models

import "time"

// Cash transaction types. Closed enum: the ledger knows income and expense.
const (
	TxnTypeIncome  = "INCOME"
	TxnTypeExpense = "EXPENSE"
)

// IsValidTxnType reports whether t is a known cash transaction type.
func IsValidTxnType(t string) bool {
	return t == TxnTypeIncome || t == TxnTypeExpense
}

// CashTransaction is one petty-cash ledger entry. There is no double-entry
// bookkeeping; balances are derived by summation, never stored.
type CashTransaction struct {
	ID              int64     `json:"id" db:"id"`
	TxnType         string    `json:"txn_type" db:"txn_type"`
	Amount          float64   `json:"amount" db:"amount"`
	Description     string    `json:"description" db:"description" binding:"required"`
	ReceiptRef      *string   `json:"receipt_ref,omitempty" db:"receipt_ref"`
	ResponsibleName string    `json:"responsible_name" db:"responsible_name"`
	TxnDate         time.Time `json:"txn_date" db:"txn_date"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// CashFilters narrows ledger list queries.
type CashFilters struct {
	TxnType         *string
	ResponsibleName *string
	DateFrom        *time.Time
	DateTo          *time.Time
	Page            int
	PageSize        int
}
