// Package mysql provides a gorm-backed implementation of ports.Store for MySQL.
//
// The repositories only use portable gorm calls, so any gorm dialector works;
// New wires the MySQL one.
package mysql

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jsamuelsen/quote-lab/internal/domain"
	"github.com/jsamuelsen/quote-lab/internal/ports"
)

// Ensure Store implements ports.Store.
var _ ports.Store = (*Store)(nil)

// Config holds MySQL connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// LogLevel is the gorm logger level: silent, error, warn or info.
	LogLevel string
}

// DSN renders cfg as a go-sql-driver DSN.
func (c Config) DSN() string {
	mc := mysqldriver.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Name
	mc.ParseTime = true
	// Report matched rather than changed rows so an update that writes the
	// stored values is not mistaken for a missing row.
	mc.ClientFoundRows = true
	mc.Params = map[string]string{"charset": "utf8mb4"}

	return mc.FormatDSN()
}

// Store implements ports.Store using gorm.
type Store struct {
	name    string
	db      *gorm.DB
	authors *authorRepo
	quotes  *quoteRepo
}

// New connects to MySQL and migrates the schema.
func New(ctx context.Context, cfg Config) (*Store, error) {
	store, err := Open(ctx, "mysql", gormmysql.Open(cfg.DSN()), cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	sqlDB, err := store.db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return store, nil
}

// Open builds a Store on any gorm dialector. name identifies the store in
// readiness checks.
func Open(ctx context.Context, name string, dialector gorm.Dialector, logLevel string) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(logLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&authorModel{}, &quoteModel{}); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{
		name:    name,
		db:      db,
		authors: &authorRepo{db: db},
		quotes:  &quoteRepo{db: db},
	}, nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Silent
	}
}

// Authors returns the author repository.
func (s *Store) Authors() ports.AuthorRepository {
	return s.authors
}

// Quotes returns the quote repository.
func (s *Store) Quotes() ports.QuoteRepository {
	return s.quotes
}

// Name identifies the store in readiness checks.
func (s *Store) Name() string {
	return s.name
}

// Check pings the database.
func (s *Store) Check(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return domain.NewUnavailableError(s.name, err.Error())
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return domain.NewUnavailableError(s.name, err.Error())
	}

	return nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("getting database instance: %w", err)
	}

	return sqlDB.Close()
}
