package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

func TestMissingTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("bookings"))
	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("refunds").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	missing, err := MissingTables(context.Background(), db, "bookings", "refunds")
	require.NoError(t, err)
	require.Equal(t, []string{"refunds"}, missing)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	boom := context.Canceled
	err = WithTx(context.Background(), db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(context.Background(), "UPDATE bookings SET status = ?", "CONFIRMED"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	require.NoError(t, WithTx(context.Background(), db, func(tx *sql.Tx) error { return nil }))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDuplicateKey(t *testing.T) {
	require.True(t, IsDuplicateKey(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	require.False(t, IsDuplicateKey(&mysql.MySQLError{Number: 1213}))
	require.False(t, IsDuplicateKey(nil))
}
