// Package storagetest содержит общие помощники для тестов репозиториев
package storagetest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoService/pkg/dbmetrics"
)

// DSNEnv переменная окружения с DSN тестовой базы
const DSNEnv = "SCHEDULER_TEST_DATABASE_DSN"

// OpenDB подключается к тестовой базе, накатывает схему и очищает таблицы.
// Без DSNEnv тест пропускается.
func OpenDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skipf("%s is not set", DSNEnv)
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	schema, err := os.ReadFile(schemaPath(t))
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, string(schema))
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `TRUNCATE appointments, holidays, vehicles, customers, service_fees RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

func schemaPath(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "0001_init.sql"))
}

// FailingDB возвращает обертку над соединением, каждый запрос которого падает с err.
// Нужна, чтобы проверить, что ошибка драйвера доходит до вызывающего кода.
func FailingDB(t *testing.T, err error) *dbmetrics.DB {
	t.Helper()

	db := sql.OpenDB(failingConnector{err: err})
	t.Cleanup(func() { _ = db.Close() })
	return dbmetrics.Wrap(db, nil)
}

type failingConnector struct {
	err error
}

func (c failingConnector) Connect(context.Context) (driver.Conn, error) {
	return failingConn(c), nil
}

func (c failingConnector) Driver() driver.Driver {
	return failingDriver(c)
}

type failingDriver struct {
	err error
}

func (d failingDriver) Open(string) (driver.Conn, error) {
	return failingConn(d), nil
}

type failingConn struct {
	err error
}

func (c failingConn) Prepare(string) (driver.Stmt, error) { return nil, c.err }
func (c failingConn) Close() error                        { return nil }
func (c failingConn) Begin() (driver.Tx, error)           { return nil, c.err }

func (c failingConn) QueryContext(context.Context, string, []driver.NamedValue) (driver.Rows, error) {
	return nil, c.err
}

func (c failingConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	return nil, c.err
}
