// Package storage selects the persistence adapter named in configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/jsamuelsen/quote-lab/internal/adapters/storage/mysql"
	"github.com/jsamuelsen/quote-lab/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quote-lab/internal/platform/config"
	"github.com/jsamuelsen/quote-lab/internal/ports"
)

// Open connects to the configured database and migrates its schema.
// The caller owns the returned store and must Close it.
func Open(ctx context.Context, cfg config.DatabaseConfig) (ports.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.New(ctx, sqlite.Config{
			Path:          cfg.SQLite.Path,
			BusyTimeoutMS: cfg.SQLite.BusyTimeoutMS,
		})
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}

		return store, nil

	case config.DriverMySQL:
		store, err := mysql.New(ctx, mysql.Config{
			Host:            cfg.MySQL.Host,
			Port:            cfg.MySQL.Port,
			User:            cfg.MySQL.User,
			Password:        cfg.MySQL.Password,
			Name:            cfg.MySQL.Name,
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			LogLevel:        cfg.MySQL.LogLevel,
		})
		if err != nil {
			return nil, fmt.Errorf("opening mysql store: %w", err)
		}

		return store, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
