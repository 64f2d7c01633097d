package dialect

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// GetDialect returns the Dialect implementation for a registered database/sql
// driver name.
func GetDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "mysql":
		return &MysqlDialect{}, nil
	case "postgres":
		return &PostgresDialect{}, nil
	case "sqlserver", "mssql":
		return &MSSQLDialect{driver: strings.ToLower(driver)}, nil
	case "oracle":
		return &OracleDialect{}, nil
	case "sqlite3":
		return &SQLiteDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
var _ Dialect = (*SQLiteDialect)(nil)
