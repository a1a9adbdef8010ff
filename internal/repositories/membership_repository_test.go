package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
)

// openUnreachableDB returns a handle whose first use fails with a connection
// error. sql.Open does not dial, so constructing it always succeeds.
func openUnreachableDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", "host=127.0.0.1 port=1 user=x password=x dbname=x sslmode=disable connect_timeout=1")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// A nil executor must fall back to the repository's own handle. The lookup
// then fails with a connection error here, but it must not panic.
func TestFindActiveMembershipWithoutExecutor(t *testing.T) {
	repo := NewMembershipRepository(openUnreachableDB(t))

	_, err := repo.FindActiveMembership(nil, 1, time.Now(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDatabaseError)
}
