package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSourceMock(t *testing.T, table string) (*PostgresSource, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresSource(sqlx.NewDb(db, "sqlmock"), table, zap.NewNop()), mock
}

func TestPostgresSourceLoad(t *testing.T) {
	src, mock := newSourceMock(t, "exam_records")

	rows := sqlmock.NewRows([]string{"student_id", "subject", "department", "exam_year", "pass_fail"}).
		AddRow("S1", "Math", "SCIENCE", int64(2023), "Pass").
		AddRow("S2", []byte("Physics"), "SCIENCE", nil, "Fail")
	mock.ExpectQuery(`SELECT \* FROM "exam_records"`).WillReturnRows(rows)

	table, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"student_id", "subject", "department", "exam_year", "pass_fail"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "2023", table.Rows[0][3])
	assert.Equal(t, "Physics", table.Rows[1][1])
	assert.Equal(t, "", table.Rows[1][3])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSourceQueryError(t *testing.T) {
	src, mock := newSourceMock(t, "exam_records")
	mock.ExpectQuery(`SELECT \* FROM "exam_records"`).WillReturnError(errors.New("connection refused"))

	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exam_records")
}
