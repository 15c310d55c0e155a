// Package dbtest empties database tables after tests.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"

	// drivers selectable through Open
	_ "github.com/lib/pq"
	_ "github.com/proullon/ramsql/driver"

	"github.com/imasker/warden/log"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Execer is the part of *sql.DB, *sql.Tx and *sql.Conn the cleaner needs
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Cleaner deletes every row of the tables it tracks
type Cleaner struct {
	db Execer

	mu     sync.Mutex
	tables []string
}

func New(db Execer) *Cleaner {
	return &Cleaner{db: db}
}

// Track adds tables to clean. A table tracked twice is cleaned once, at its first position.
func (c *Cleaner) Track(tables ...string) error {
	for _, table := range tables {
		if !identifier.MatchString(table) {
			return fmt.Errorf("dbtest: invalid table name %q", table)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, table := range tables {
		if !contains(c.tables, table) {
			c.tables = append(c.tables, table)
		}
	}
	return nil
}

// Tables returns the tracked tables in tracking order
func (c *Cleaner) Tables() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.tables...)
}

// Clean deletes rows from the tracked tables, latest tracked first so that
// children registered after their parents go before them. It stops at the first failure.
func (c *Cleaner) Clean(ctx context.Context) error {
	tables := c.Tables()
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := c.db.ExecContext(ctx, "DELETE FROM "+tables[i]); err != nil {
			return fmt.Errorf("dbtest: clean %s: %w", tables[i], err)
		}
		log.Logger.Debug("Cleaned table %s", tables[i])
	}
	return nil
}

// Register cleans the tracked tables when t and its subtests complete
func (c *Cleaner) Register(t testing.TB) {
	t.Helper()
	t.Cleanup(func() {
		if err := c.Clean(context.Background()); err != nil {
			t.Errorf("%s", err)
		}
	})
}

// Open connects to a database URL: postgres:// and postgresql:// through lib/pq,
// ramsql://<name> for an in-memory database shared by everything opening the same name
func Open(dsn string) (*sql.DB, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		return sql.Open("postgres", dsn)
	case "ramsql":
		name := strings.TrimPrefix(u.Host+u.Path, "/")
		if name == "" {
			return nil, fmt.Errorf("dbtest: missing database name in %s", dsn)
		}
		return sql.Open("ramsql", name)
	}

	return nil, fmt.Errorf("dbtest: unsupported database url %s", dsn)
}

func contains(tables []string, table string) bool {
	for _, t := range tables {
		if t == table {
			return true
		}
	}
	return false
}
