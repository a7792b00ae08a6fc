package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv_store (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSQLite_SetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "memories", []byte(`[]`)))

	v, err := r.Get(ctx, "memories")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)
}

func TestSQLite_Get_Absent_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLite_Set_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "nextId", []byte("1")))
	require.NoError(t, r.Set(ctx, "nextId", []byte("2")))

	v, err := r.Get(ctx, "nextId")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}

func TestSQLite_Delete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{1}))
	require.NoError(t, r.Delete(ctx, "x"))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLite_SetBatch_WritesAll(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	require.NoError(t, r.SetBatch(ctx, map[string][]byte{
		"memories": []byte(`[{"id":1}]`),
		"nextId":   []byte("2"),
	}))

	m, err := r.Get(ctx, "memories")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), m)

	n, err := r.Get(ctx, "nextId")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), n)
}

func newPostgresMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgres_Get(t *testing.T) {
	r, mock := newPostgresMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+value\s+FROM\s+kv_store\s+WHERE\s+key\s*=\s*\$1$`).
		WithArgs("memories").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))

	v, err := r.Get(context.Background(), "memories")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Get_NoRows(t *testing.T) {
	r, mock := newPostgresMock(t)

	mock.ExpectQuery(`SELECT\s+value\s+FROM\s+kv_store`).
		WithArgs("nextId").
		WillReturnError(sql.ErrNoRows)

	v, err := r.Get(context.Background(), "nextId")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPostgres_Get_DBError(t *testing.T) {
	r, mock := newPostgresMock(t)

	mock.ExpectQuery(`SELECT\s+value\s+FROM\s+kv_store`).
		WithArgs("nextId").
		WillReturnError(errors.New("db down"))

	_, err := r.Get(context.Background(), "nextId")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get kv[nextId]")
}

func TestPostgres_Set_Upserts(t *testing.T) {
	r, mock := newPostgresMock(t)

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+kv_store\s*\(key,\s*value\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(key\)\s*DO\s+UPDATE`).
		WithArgs("nextId", []byte("3")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Set(context.Background(), "nextId", []byte("3")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Delete(t *testing.T) {
	r, mock := newPostgresMock(t)

	mock.ExpectExec(`DELETE\s+FROM\s+kv_store\s+WHERE\s+key\s*=\s*\$1`).
		WithArgs("memories").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Delete(context.Background(), "memories"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SetBatch_CommitsInKeyOrder(t *testing.T) {
	r, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT\s+INTO\s+kv_store`).WithArgs("memories", []byte(`[]`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT\s+INTO\s+kv_store`).WithArgs("nextId", []byte("1")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := r.SetBatch(context.Background(), map[string][]byte{
		"nextId":   []byte("1"),
		"memories": []byte(`[]`),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SetBatch_RollsBackOnError(t *testing.T) {
	r, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT\s+INTO\s+kv_store`).WithArgs("memories", []byte(`[]`)).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := r.SetBatch(context.Background(), map[string][]byte{
		"memories": []byte(`[]`),
		"nextId":   []byte("1"),
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
