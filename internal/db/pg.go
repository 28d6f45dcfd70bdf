package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// redactDSN returns a copy of the DSN with password replaced by **** for logging.
func redactDSN(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "(invalid DATABASE_URL)"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "****")
		}
	}
	return u.String()
}

// extractDBName returns the database name from URL path ("/saveone_db" -> "saveone_db").
func extractDBName(u *url.URL) string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(u.Path, "/"))
}

func isDatabaseDoesNotExist(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())

	// Common Postgres / pq messages (EN + DE)
	return strings.Contains(msg, "database") && strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "datenbank") && strings.Contains(msg, "existiert nicht")
}

// Open establishes a connection to PostgreSQL and configures the connection pool.
func Open(ctx context.Context, databaseURL string, logger zerolog.Logger) (*sql.DB, error) {
	databaseURL = strings.TrimSpace(databaseURL)
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}

	dbName := extractDBName(u)
	host := u.Hostname()
	port := u.Port()
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}

	logger.Info().
		Str("host", host).
		Str("port", port).
		Str("db", dbName).
		Str("user", u.User.Username()).
		Str("dsn", redactDSN(databaseURL)).
		Msg("connecting to database")

	if dbName != "" {
		precheckDatabase(ctx, u, dbName, logger)
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(connectCtx); err != nil {
		_ = db.Close()

		if isDatabaseDoesNotExist(err) {
			return nil, fmt.Errorf("database %q not found on host=%s port=%s: %w", dbName, host, port, err)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("db", dbName).Msg("connected to PostgreSQL database")
	return db, nil
}

// precheckDatabase looks the target database up through the "postgres"
// maintenance database so a missing database is reported by name. Failures
// only produce log lines.
func precheckDatabase(ctx context.Context, u *url.URL, dbName string, logger zerolog.Logger) {
	maintenanceURL := *u
	maintenanceURL.Path = "/postgres"
	maintenanceURL.RawPath = ""

	maintDB, err := sql.Open("postgres", maintenanceURL.String())
	if err != nil {
		logger.Warn().Err(err).Msg("db precheck: could not open maintenance connection")
		return
	}
	defer maintDB.Close()

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var found string
	rowErr := maintDB.QueryRowContext(checkCtx,
		"SELECT datname FROM pg_database WHERE datname = $1",
		dbName,
	).Scan(&found)

	switch {
	case rowErr == nil:
		logger.Debug().Str("db", found).Msg("db precheck: database exists")
	case errors.Is(rowErr, sql.ErrNoRows):
		logger.Warn().Str("db", dbName).Msg("db precheck: database not found on this Postgres instance")
	default:
		logger.Warn().Err(rowErr).Msg("db precheck: could not query pg_database")
	}
}
