package datastore

import (
	"database/sql"
	"fmt"

	// pq is the PostgreSQL driver.
	_ "github.com/lib/pq"
)

// DB is a global database connection pool (for simplicity in this context).
// Persistence is optional: when no DSN is configured the pool stays nil and
// every store function reports ErrNotInitialized.
var DB *sql.DB

// InitDB initializes the database connection from a data source name.
func InitDB(dataSourceName string) error {
	var err error
	DB, err = sql.Open("postgres", dataSourceName)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Enabled reports whether persistence has been initialized for this process.
func Enabled() bool {
	return DB != nil
}
