package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// ErrNotConfigured is returned by Open when the environment does not
// supply a database URL or name.  Callers should treat this as a
// degraded-but-running state rather than a startup failure: the HTTP
// server still comes up and data-dependent endpoints report the
// missing configuration per request.
var ErrNotConfigured = errors.New("DATABASE_URL or DATABASE_NAME not set")

// Open connects to MySQL and verifies the connection.  url is a DSN
// prefix of the form "user:pass@tcp(host:port)" (a trailing slash is
// tolerated) and name is the database to select.
func Open(url, name string) (*sql.DB, error) {
	if url == "" || name == "" {
		return nil, ErrNotConfigured
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		strings.TrimSuffix(url, "/"), name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
