// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores aggregated sweep reports in a SQL database.
package db

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/net/context"

	"github.com/classicvalues/lisa/sweepstat"
)

// DefaultTable is the results table used when a runbook or flag does
// not name one.
const DefaultTable = sweepstat.DefaultTable

// DB is a high-level interface to a results database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql    *sql.DB // underlying database connection
	driver string  // driver name, for dialect switches
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db, driver: driverName}
	if err := d.createTable(context.Background(), DefaultTable); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for a results table. It is evaluated with . as a map containing the
// table name under "table" and one entry whose key is the driver
// name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS {{.table}} (
	TestCaseName VARCHAR(255),
	TestDate DATETIME,
	HostType VARCHAR(255),
	HostBy VARCHAR(255),
	HostOS VARCHAR(255),
	GuestOSType VARCHAR(255),
	GuestDistro VARCHAR(255),
	GuestSize VARCHAR(255),
	KernelVersion VARCHAR(255),
	IPVersion VARCHAR(32),
	ProtocolType VARCHAR(32),
	DataPath VARCHAR(32),
	SendBufSize_KBytes INT,
	NumberOfConnections INT,
	TxThroughput_Gbps DOUBLE,
	RxThroughput_Gbps DOUBLE,
	DatagramLoss DOUBLE{{if not .sqlite3}},
	INDEX (TestCaseName(100), TestDate){{end}}
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS {{.table}}CaseDate ON {{.table}}(TestCaseName, TestDate);
{{end}}
`))

// createTable creates table if it is missing. The driver name stored
// at open selects the correct syntax.
func (db *DB) createTable(ctx context.Context, table string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]interface{}{db.driver: true, "table": table}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// SaveReport stores one sweep's results as rows of table, creating
// the table if needed. All rows are inserted in a single transaction,
// so a sweep is either fully recorded or not at all.
func (db *DB) SaveReport(ctx context.Context, table string, env sweepstat.TestEnv, results []sweepstat.CellResult) (err error) {
	if len(results) == 0 {
		return nil
	}
	if err := db.createTable(ctx, table); err != nil {
		return err
	}

	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(sweepstat.ResultColumns)), ", ") + "), "
	query := "INSERT INTO " + table + " (" + strings.Join(sweepstat.ResultColumns, ", ") + ") VALUES " +
		strings.Repeat(tuple, len(results))
	query = strings.TrimSuffix(query, ", ")
	var args []interface{}
	for _, r := range results {
		args = append(args, sweepstat.RowValues(env, r)...)
	}

	tx, err := db.sql.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

// CountResults returns the number of rows in table.
func (db *DB) CountResults(table string) (int, error) {
	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
	return count, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	return db.sql.Close()
}
