package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_admin_backend/internal/models"
)

// CashRepository defines the interface for cash-ledger database operations.
type CashRepository interface {
	CreateTransaction(executor SQLExecutor, txn *models.CashTransaction) (int64, error)
	GetTransactionByID(id int64) (*models.CashTransaction, error)
	GetTransactions(filters models.CashFilters) ([]models.CashTransaction, int, error)
	UpdateTransaction(executor SQLExecutor, txn *models.CashTransaction) error
	DeleteTransaction(executor SQLExecutor, id int64) error

	// GetTransactionsForPeriod returns every transaction dated in [from, to)
	// ordered by date. Feeds the monthly cash report, so no pagination.
	GetTransactionsForPeriod(from, to time.Time) ([]models.CashTransaction, error)
}

type cashRepository struct {
	db *sql.DB
}

// NewCashRepository creates a new instance of CashRepository.
func NewCashRepository(db *sql.DB) CashRepository {
	return &cashRepository{db: db}
}

const cashColumns = `id, txn_type, amount, description, receipt_ref, responsible_name, txn_date, created_at, updated_at`

func scanCashTransaction(row scanner, txn *models.CashTransaction) error {
	return row.Scan(
		&txn.ID, &txn.TxnType, &txn.Amount, &txn.Description, &txn.ReceiptRef,
		&txn.ResponsibleName, &txn.TxnDate, &txn.CreatedAt, &txn.UpdatedAt,
	)
}

// CreateTransaction inserts a new ledger entry.
func (r *cashRepository) CreateTransaction(executor SQLExecutor, txn *models.CashTransaction) (int64, error) {
	query := `INSERT INTO cash_transactions (txn_type, amount, description, receipt_ref, responsible_name, txn_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	txn.CreatedAt = currentTime
	txn.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		txn.TxnType, txn.Amount, txn.Description, txn.ReceiptRef,
		txn.ResponsibleName, txn.TxnDate, txn.CreatedAt, txn.UpdatedAt,
	).Scan(&txn.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating cash transaction: %v", ErrDatabaseError, err)
	}
	return txn.ID, nil
}

// GetTransactionByID retrieves a ledger entry by ID.
func (r *cashRepository) GetTransactionByID(id int64) (*models.CashTransaction, error) {
	txn := &models.CashTransaction{}
	query := `SELECT ` + cashColumns + ` FROM cash_transactions WHERE id = $1`

	err := scanCashTransaction(r.db.QueryRow(query, id), txn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting cash transaction by ID %d: %v", ErrDatabaseError, id, err)
	}
	return txn, nil
}

// GetTransactions retrieves ledger entries with pagination and filters.
func (r *cashRepository) GetTransactions(filters models.CashFilters) ([]models.CashTransaction, int, error) {
	transactions := []models.CashTransaction{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + cashColumns + `, COUNT(*) OVER() as total_count FROM cash_transactions`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.TxnType != nil && *filters.TxnType != "" {
		conditions = append(conditions, fmt.Sprintf("txn_type = $%d", argCount))
		args = append(args, *filters.TxnType)
		argCount++
	}
	if filters.ResponsibleName != nil && *filters.ResponsibleName != "" {
		conditions = append(conditions, fmt.Sprintf("responsible_name ILIKE $%d", argCount))
		args = append(args, "%"+*filters.ResponsibleName+"%")
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("txn_date >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("txn_date < $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY txn_date DESC, id DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying cash transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var txn models.CashTransaction
		if err := rows.Scan(
			&txn.ID, &txn.TxnType, &txn.Amount, &txn.Description, &txn.ReceiptRef,
			&txn.ResponsibleName, &txn.TxnDate, &txn.CreatedAt, &txn.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning cash transaction: %v", ErrDatabaseError, err)
		}
		transactions = append(transactions, txn)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating cash transaction rows: %v", ErrDatabaseError, err)
	}
	return transactions, totalCount, nil
}

// UpdateTransaction persists edits to a ledger entry.
func (r *cashRepository) UpdateTransaction(executor SQLExecutor, txn *models.CashTransaction) error {
	query := `UPDATE cash_transactions SET
	            txn_type = $1, amount = $2, description = $3, receipt_ref = $4,
	            responsible_name = $5, txn_date = $6, updated_at = $7
	          WHERE id = $8`
	txn.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		txn.TxnType, txn.Amount, txn.Description, txn.ReceiptRef,
		txn.ResponsibleName, txn.TxnDate, txn.UpdatedAt, txn.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating cash transaction ID %d: %v", ErrDatabaseError, txn.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a ledger entry.
func (r *cashRepository) DeleteTransaction(executor SQLExecutor, id int64) error {
	query := `DELETE FROM cash_transactions WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting cash transaction ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTransactionsForPeriod returns all entries dated inside [from, to).
func (r *cashRepository) GetTransactionsForPeriod(from, to time.Time) ([]models.CashTransaction, error) {
	query := `SELECT ` + cashColumns + ` FROM cash_transactions
	          WHERE txn_date >= $1 AND txn_date < $2
	          ORDER BY txn_date`

	rows, err := r.db.Query(query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: querying cash transactions for period: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	transactions := []models.CashTransaction{}
	for rows.Next() {
		var txn models.CashTransaction
		if err := scanCashTransaction(rows, &txn); err != nil {
			return nil, fmt.Errorf("%w: scanning cash transaction: %v", ErrDatabaseError, err)
		}
		transactions = append(transactions, txn)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating period cash rows: %v", ErrDatabaseError, err)
	}
	return transactions, nil
}
