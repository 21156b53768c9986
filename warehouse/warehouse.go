// Package warehouse executes synthesized SQL against the analytical
// warehouse.
//
// Design decisions:
//   - database/sql with the pgx stdlib driver, so execution paths are
//     testable against a mock driver.
//   - Every Execute acquires a dedicated connection and releases it on
//     all exit paths; result rows are always closed. Secondary close
//     errors are swallowed.
//   - SSH tunnel integration is handled transparently: if SSH is enabled,
//     we first establish the tunnel, then connect to the local endpoint.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fleetops/fleetchat/config"
	"github.com/fleetops/fleetchat/ssh"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Result holds the output of one query execution. It is transient:
// produced and consumed within a single pipeline invocation.
type Result struct {
	Columns   []string
	Rows      []Row
	Formatted string
}

// Warehouse wraps the warehouse database handle and optional SSH tunnel.
type Warehouse struct {
	db       *sql.DB
	rowLimit int
	timeout  time.Duration
	tunnel   *ssh.Tunnel
}

// Connect establishes the warehouse connection, optionally through an
// SSH tunnel, and verifies it with a ping.
func Connect(ctx context.Context, cfg config.WarehouseConfig, rowLimit int) (*Warehouse, error) {
	w := &Warehouse{rowLimit: rowLimit, timeout: cfg.QueryTimeout}

	if cfg.SSH.Enabled {
		tunnel, err := ssh.NewTunnel(cfg.SSH, cfg.Host, cfg.Port)
		if err != nil {
			return nil, fmt.Errorf("ssh tunnel: %w", err)
		}
		localAddr, err := tunnel.Start(ctx)
		if err != nil {
			return nil, fmt.Errorf("ssh tunnel start: %w", err)
		}
		w.tunnel = tunnel

		// Override connection target with local tunnel endpoint
		cfg.Host = localAddr.Host
		cfg.Port = localAddr.Port
	}

	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		w.closeTunnel()
		return nil, fmt.Errorf("warehouse open: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		w.closeTunnel()
		return nil, fmt.Errorf("warehouse ping: %w", err)
	}

	w.db = db
	return w, nil
}

// New wraps an existing database handle. Used by tests.
func New(db *sql.DB, rowLimit int, timeout time.Duration) *Warehouse {
	return &Warehouse{db: db, rowLimit: rowLimit, timeout: timeout}
}

// Close shuts down the database handle and SSH tunnel.
func (w *Warehouse) Close() {
	if w.db != nil {
		w.db.Close()
	}
	w.closeTunnel()
}

func (w *Warehouse) closeTunnel() {
	if w.tunnel != nil {
		w.tunnel.Stop()
		w.tunnel = nil
	}
}

// Execute runs one synthesized SQL statement and collects all rows.
// The connection is acquired per call and released on every exit path.
func (w *Warehouse) Execute(ctx context.Context, sqlText string) (*Result, error) {
	sqlText = strings.TrimSpace(sqlText)
	if sqlText == "" {
		return nil, fmt.Errorf("empty query")
	}

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	conn, err := w.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var collected []Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = normalize(values[i])
		}
		collected = append(collected, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Result{
		Columns:   columns,
		Rows:      collected,
		Formatted: FormatRows(columns, collected, w.rowLimit),
	}, nil
}

// normalize converts driver byte slices into strings for display.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
