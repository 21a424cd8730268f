/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package gormstore

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported driver names
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type gormLoggerWriter struct {
	helper *log.Helper
}

func (w gormLoggerWriter) Printf(format string, args ...interface{}) {
	w.helper.Debugf(format, args...)
}

// NewGormLogger routes gorm's SQL log through a kratos logger at debug level.
func NewGormLogger(l *log.Helper, level logger.LogLevel) logger.Interface {
	return logger.New(
		gormLoggerWriter{helper: l},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// Config describes a database connection.
type Config struct {
	Driver string
	DSN    string

	// Migrate creates or updates tables for these models after connecting.
	Migrate []any

	// MaxOpenConns limits the pool; zero keeps the driver default.
	MaxOpenConns int

	Logger log.Logger
}

// Open connects to the database described by cfg.
func Open(cfg Config) (*gorm.DB, error) {
	var driver gorm.Dialector
	switch cfg.Driver {
	case DriverMySQL:
		driver = mysql.Open(cfg.DSN)
	case DriverPostgres:
		driver = postgres.Open(cfg.DSN)
	case DriverSQLite:
		driver = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}

	l := cfg.Logger
	if l == nil {
		l = log.GetLogger()
	}
	helper := log.NewHelper(log.With(l, "module", "entitycrud/gormstore"))

	db, err := gorm.Open(driver, &gorm.Config{
		Logger:         NewGormLogger(helper, logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed opening connection to db: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed getting connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if len(cfg.Migrate) > 0 {
		if err := db.AutoMigrate(cfg.Migrate...); err != nil {
			return nil, fmt.Errorf("failed creating schema resources: %w", err)
		}
	}

	helper.Infof("connected to %s", cfg.Driver)
	return db, nil
}
