package database

import (
	"context"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"naija-events/internal/config"
)

func newTestMigrator(t *testing.T) (*Migrator, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := NewMigrator(db, zap.NewNop())
	m.fs = fstest.MapFS{
		"migrations/002_add_index.sql":      {Data: []byte("CREATE INDEX idx ON t(c);")},
		"migrations/001_initial_schema.sql": {Data: []byte("CREATE TABLE t (c INT);")},
		"migrations/README.md":              {Data: []byte("ignored")},
		"migrations/nounderscore.sql":       {Data: []byte("ignored")},
	}
	return m, mock
}

func TestMigrator_LoadMigrations(t *testing.T) {
	m, _ := newTestMigrator(t)

	migrations, err := m.LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "initial_schema", migrations[0].Name)
	assert.Equal(t, 2, migrations[1].Version)
	assert.Equal(t, "CREATE INDEX idx ON t(c);", migrations[1].SQL)
}

func TestEmbeddedMigrations(t *testing.T) {
	m := NewMigrator(nil, zap.NewNop())

	migrations, err := m.LoadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE ticket_types")
}

func TestMigrator_RunMigrations_AppliesPending(t *testing.T) {
	m, mock := newTestMigrator(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX idx ON t(c);")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs(2, "add_index").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, m.RunMigrations(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_RunMigrations_RollsBackOnFailure(t *testing.T) {
	m, mock := newTestMigrator(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE t (c INT);")).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := m.RunMigrations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute migration 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_Status(t *testing.T) {
	m, mock := newTestMigrator(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))

	states, err := m.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.True(t, states[0].Applied)
	assert.False(t, states[1].Applied)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "postgres://u@h/db", DSN(config.DatabaseConfig{URL: "postgres://u@h/db", Host: "ignored"}))
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=naija_events sslmode=disable",
		DSN(config.DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "pw", DBName: "naija_events", SSLMode: "disable"}))
}
