// Package database provides the core functionality for creating and managing
// database connections in a clean, isolated manner.
package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
	"github.com/BharatAdaptive/munimji-go/pkg/config"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// DB represents a wrapper around the standard SQL database connection.
type DB struct {
	*sql.DB
}

// DriverFor picks the SQL driver and data source name for a database URL.
// Local file URLs use sqlite3; libsql/wss/https URLs use the libsql driver
// with the auth token appended.
func DriverFor(databaseURL, authToken string) (driverName, dataSourceName string) {
	switch {
	case strings.HasPrefix(databaseURL, "libsql://"),
		strings.HasPrefix(databaseURL, "wss://"),
		strings.HasPrefix(databaseURL, "https://"):
		if authToken != "" {
			return "libsql", fmt.Sprintf("%s?authToken=%s", databaseURL, authToken)
		}
		return "libsql", databaseURL
	default:
		return "sqlite3", databaseURL
	}
}

// NewConnection establishes a new database connection for the configured URL.
func NewConnection(databaseURL, authToken string) (*DB, error) {
	driverName, dsn := DriverFor(databaseURL, authToken)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(config.DBMaxOpenConns)
	db.SetMaxIdleConns(config.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// NewConnectionWithLogger establishes a new database connection with logging.
func NewConnectionWithLogger(databaseURL, authToken string, logger *logging.ChanneledLogger) (*DB, error) {
	start := time.Now()
	driverName, _ := DriverFor(databaseURL, authToken)
	logger.Store().Debug("Creating new database connection", "driverName", driverName)

	db, err := NewConnection(databaseURL, authToken)
	if err != nil {
		logger.Store().Error("Failed to open database connection", "error", err.Error(), "driverName", driverName)
		return nil, err
	}

	duration := time.Since(start)
	logger.Store().Info("Database connection established", "driverName", driverName, "duration", duration)
	if duration > config.SlowQueryThreshold {
		logger.LogSlowQuery("DATABASE_CONNECTION", duration)
	}

	return db, nil
}

// CheckAndLogSlowQuery logs a query on the slow-query channel if its duration
// exceeds the configured threshold.
func CheckAndLogSlowQuery(logger *logging.ChanneledLogger, query string, duration time.Duration) {
	if logger == nil {
		return
	}
	if duration > config.SlowQueryThreshold {
		logger.LogSlowQuery(query, duration)
	}
}
