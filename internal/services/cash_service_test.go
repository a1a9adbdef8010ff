package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym_admin_backend/internal/models"
)

func newCashFixture() (*fakeCashRepo, CashService) {
	cashRepo := newFakeCashRepo()
	return cashRepo, NewCashService(cashRepo, nil)
}

func TestCreateCashTransaction(t *testing.T) {
	_, service := newCashFixture()

	date := "2026-03-15"
	txn, err := service.CreateTransaction(CreateCashTransactionRequest{
		TxnType:         models.TxnTypeExpense,
		Amount:          4500,
		Description:     "cleaning supplies",
		ResponsibleName: "Marat",
		TxnDate:         &date,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", txn.TxnDate.Format("2006-01-02"))

	// Date defaults to today when omitted.
	txn, err = service.CreateTransaction(CreateCashTransactionRequest{
		TxnType:         models.TxnTypeIncome,
		Amount:          15000,
		Description:     "membership payment",
		ResponsibleName: "Aliya",
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), txn.TxnDate, time.Minute)
}

func TestCreateCashTransactionValidation(t *testing.T) {
	_, service := newCashFixture()

	_, err := service.CreateTransaction(CreateCashTransactionRequest{
		TxnType: "TRANSFER", Amount: 100, Description: "x", ResponsibleName: "y",
	})
	assert.ErrorIs(t, err, ErrCashValidation)

	_, err = service.CreateTransaction(CreateCashTransactionRequest{
		TxnType: models.TxnTypeIncome, Amount: 0, Description: "x", ResponsibleName: "y",
	})
	assert.ErrorIs(t, err, ErrCashValidation)

	_, err = service.CreateTransaction(CreateCashTransactionRequest{
		TxnType: models.TxnTypeIncome, Amount: 100, Description: " ", ResponsibleName: "y",
	})
	assert.ErrorIs(t, err, ErrCashValidation)

	badDate := "15.03.2026"
	_, err = service.CreateTransaction(CreateCashTransactionRequest{
		TxnType: models.TxnTypeIncome, Amount: 100, Description: "x", ResponsibleName: "y", TxnDate: &badDate,
	})
	assert.ErrorIs(t, err, ErrDateFormat)
}

func TestUpdateCashTransaction(t *testing.T) {
	_, service := newCashFixture()

	txn, err := service.CreateTransaction(CreateCashTransactionRequest{
		TxnType:         models.TxnTypeIncome,
		Amount:          15000,
		Description:     "membership payment",
		ResponsibleName: "Aliya",
	})
	require.NoError(t, err)

	amount := 16000.0
	updated, err := service.UpdateTransaction(txn.ID, UpdateCashTransactionRequest{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, amount, updated.Amount)

	negative := -5.0
	_, err = service.UpdateTransaction(txn.ID, UpdateCashTransactionRequest{Amount: &negative})
	assert.ErrorIs(t, err, ErrCashValidation)

	_, err = service.UpdateTransaction(999, UpdateCashTransactionRequest{})
	assert.ErrorIs(t, err, ErrCashTransactionNotFound)
}

func TestDeleteCashTransaction(t *testing.T) {
	_, service := newCashFixture()

	txn, err := service.CreateTransaction(CreateCashTransactionRequest{
		TxnType:         models.TxnTypeExpense,
		Amount:          2000,
		Description:     "water delivery",
		ResponsibleName: "Marat",
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteTransaction(txn.ID))
	_, err = service.GetTransactionByID(txn.ID)
	assert.ErrorIs(t, err, ErrCashTransactionNotFound)
	assert.ErrorIs(t, service.DeleteTransaction(txn.ID), ErrCashTransactionNotFound)
}

func TestGetTransactionsRejectsUnknownType(t *testing.T) {
	_, service := newCashFixture()

	unknown := "REFUND"
	_, _, err := service.GetTransactions(models.CashFilters{TxnType: &unknown})
	assert.ErrorIs(t, err, ErrCashValidation)
}
