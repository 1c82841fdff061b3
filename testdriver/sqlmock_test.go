package testdriver_test

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSQLOracleDDLShape uses go-sqlmock as a recording test double
// standing in for the real modernc.org/sqlite driver. It does not call
// SQLOracle: it issues, itself, one CREATE TABLE followed by one INSERT
// per row, written in the shape SQLOracle.createAndLoad uses — column
// names c0, c1, ... and positional `?` binds — and checks that the mock
// received exactly those statements, without needing a live SQLite
// engine in the test environment.
func TestSQLOracleDDLShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE nodes \(c0 BLOB\)`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO nodes VALUES \(\?\)`).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO nodes VALUES \(\?\)`).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(1, 1))

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "CREATE TABLE nodes (c0 BLOB)"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO nodes VALUES (?)", int64(1)); err != nil {
		t.Fatal(err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO nodes VALUES (?)", int64(2)); err != nil {
		t.Fatal(err)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}
