package postgres_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contactbook-api/internal/infrastructure/postgres"
	"github.com/jhoicas/contactbook-api/pkg/logger"
)

func TestDefaultMigrations_Ordenadas(t *testing.T) {
	list, err := postgres.DefaultMigrations()
	require.NoError(t, err)
	require.Len(t, list, 4)

	for i, m := range list {
		assert.Equal(t, int64(i+1), m.Version)
		assert.NotEmpty(t, m.SQL)
	}
	assert.Equal(t, "create_contact_books", list[0].Name)
	assert.Equal(t, "create_contacts", list[2].Name)
}

func TestLoadMigrations(t *testing.T) {
	sql := &fstest.MapFile{Data: []byte("SELECT 1;")}

	t.Run("ordena por versión e ignora no-sql", func(t *testing.T) {
		fsys := fstest.MapFS{
			"m/010_tercera.sql": sql,
			"m/002_segunda.sql": sql,
			"m/001_primera.sql": sql,
			"m/README.md":       &fstest.MapFile{Data: []byte("docs")},
		}
		list, err := postgres.LoadMigrations(fsys, "m")
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []int64{1, 2, 10}, []int64{list[0].Version, list[1].Version, list[2].Version})
		assert.Equal(t, "primera", list[0].Name)
	})

	cases := map[string]fstest.MapFS{
		"versión repetida":    {"m/001_a.sql": sql, "m/0001_b.sql": sql},
		"sin descripción":     {"m/001.sql": sql},
		"versión no numérica": {"m/abc_a.sql": sql},
		"versión cero":        {"m/000_a.sql": sql},
		"archivo vacío":       {"m/001_a.sql": &fstest.MapFile{Data: []byte("  \n")}},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := postgres.LoadMigrations(fsys, "m")
			assert.Error(t, err)
		})
	}
}

func expectApply(mock pgxmock.PgxPoolIface, m postgres.Migration, exists bool) {
	mock.ExpectBegin()
	mock.ExpectExec(q(`SELECT pg_advisory_xact_lock($1)`)).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(q(`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`)).
		WithArgs(m.Version).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))
	if exists {
		mock.ExpectRollback()
		return
	}
	mock.ExpectExec(q(m.SQL)).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec(q(`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`)).
		WithArgs(m.Version, m.Name).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
}

func TestMigrator_Up_AplicaSoloPendientes(t *testing.T) {
	mock := newMock(t)
	migs := []postgres.Migration{
		{Version: 1, Name: "uno", SQL: "CREATE TABLE uno (id BIGINT)"},
		{Version: 2, Name: "dos", SQL: "CREATE TABLE dos (id BIGINT)"},
	}

	mock.ExpectExec(q(`CREATE TABLE IF NOT EXISTS schema_migrations`)).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	expectApply(mock, migs[0], true)
	expectApply(mock, migs[1], false)

	n, err := postgres.NewMigrator(mock, migs, logger.Nop()).Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_Up_SeDetieneEnElPrimerFallo(t *testing.T) {
	mock := newMock(t)
	migs := []postgres.Migration{
		{Version: 1, Name: "uno", SQL: "CREATE TABLE uno (id BIGINT)"},
		{Version: 2, Name: "rota", SQL: "CREATE TABLA rota"},
		{Version: 3, Name: "tres", SQL: "CREATE TABLE tres (id BIGINT)"},
	}

	mock.ExpectExec(q(`CREATE TABLE IF NOT EXISTS schema_migrations`)).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	expectApply(mock, migs[0], false)

	mock.ExpectBegin()
	mock.ExpectExec(q(`SELECT pg_advisory_xact_lock($1)`)).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(q(`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`)).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(q(migs[1].SQL)).WillReturnError(errors.New(`syntax error at or near "TABLA"`))
	mock.ExpectRollback()

	n, err := postgres.NewMigrator(mock, migs, logger.Nop()).Up(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, err.Error(), "002_rota")
	assert.NoError(t, mock.ExpectationsWereMet(), "la migración 3 no se intenta")
}

func TestMigrator_Up_SinTablaDeControl(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(q(`CREATE TABLE IF NOT EXISTS schema_migrations`)).
		WillReturnError(errors.New("permission denied"))

	_, err := postgres.NewMigrator(mock, nil, logger.Nop()).Up(context.Background())
	assert.Error(t, err)
}

func TestMigrator_Applied(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(q(`SELECT version FROM schema_migrations ORDER BY version`)).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow(int64(1)).AddRow(int64(2)))

	versions, err := postgres.NewMigrator(mock, nil, logger.Nop()).Applied(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, versions)
}
