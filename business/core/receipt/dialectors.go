package receipt

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// createDialector creates the GORM dialector for the configured driver. The
// sqlite driver is pure Go so the default catalog needs no cgo toolchain.
func createDialector(cfg Config) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Driver) {
	case "sqlite", "sqlite3":
		if cfg.Connection == ":memory:" {
			return sqlite.Open("file::memory:?cache=shared"), nil
		}
		return sqlite.Open(cfg.Connection), nil

	case "postgres":
		return postgres.New(postgres.Config{
			DSN:                  cfg.Connection,
			PreferSimpleProtocol: true,
		}), nil

	case "mysql", "mariadb":
		return mysql.New(mysql.Config{
			DSN:                       cfg.Connection,
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}
