package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")
)

// SQLExecutor defines an interface that can be satisfied by *sql.DB or *sql.Tx
// This allows repository methods to be used within transactions or with a direct DB connection.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// scanner is an interface satisfied by *sql.Row and *sql.Rows.
// This allows for generic scanning helpers.
type scanner interface {
	Scan(dest ...interface{}) error
}

// TxRunner runs a function inside a database transaction, committing on a
// nil return and rolling back otherwise. The services use it for compound
// operations that must not partially apply (membership supersede, visit
// admission and deletion). Test doubles may run fn without a real database.
type TxRunner interface {
	RunTx(fn func(executor SQLExecutor) error) error
}

type sqlTxRunner struct {
	db *sql.DB
}

// NewTxRunner creates a TxRunner backed by the given database handle.
func NewTxRunner(db *sql.DB) TxRunner {
	return &sqlTxRunner{db: db}
}

func (r *sqlTxRunner) RunTx(fn func(executor SQLExecutor) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", ErrDatabaseError, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", ErrDatabaseError, err)
	}
	return nil
}
