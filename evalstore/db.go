// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evalstore caches downloaded build results in a SQL
// database, so evaluations that were already fetched can be
// rebuilt without contacting the build server.
package evalstore

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
)

// DB is a cache of build results. It's safe for concurrent use by
// multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertMeta   *sql.Stmt
	selectMeta   *sql.Stmt
	selectBuilds *sql.Stmt
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
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Metas (
	BuildID BIGINT UNSIGNED PRIMARY KEY,
	Content {{if .sqlite3}}BLOB{{else}}LONGBLOB{{end}}
);
CREATE TABLE IF NOT EXISTS EvalBuilds (
	Project VARCHAR(255),
	Jobset VARCHAR(255),
	EvalID BIGINT UNSIGNED,
	Position INTEGER,
	BuildID BIGINT UNSIGNED,
	PRIMARY KEY (Project, Jobset, EvalID, Position)
);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	// REPLACE is understood by both MySQL and SQLite.
	db.insertMeta, err = db.sql.Prepare("REPLACE INTO Metas(BuildID, Content) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.selectMeta, err = db.sql.Prepare("SELECT Content FROM Metas WHERE BuildID = ?")
	if err != nil {
		return err
	}
	db.selectBuilds, err = db.sql.Prepare("SELECT BuildID FROM EvalBuilds WHERE Project = ? AND Jobset = ? AND EvalID = ? ORDER BY Position")
	if err != nil {
		return err
	}
	return nil
}

// PutMeta stores the meta.json content of a build, replacing any
// earlier copy.
func (db *DB) PutMeta(ctx context.Context, build int, content []byte) error {
	_, err := db.insertMeta.ExecContext(ctx, build, content)
	return err
}

// Meta returns the stored meta.json content of a build. ok is false
// if the build is not in the cache.
func (db *DB) Meta(ctx context.Context, build int) (content []byte, ok bool, err error) {
	err = db.selectMeta.QueryRowContext(ctx, build).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return content, true, nil
}

// PutEvalBuilds records the builds of an evaluation, in order,
// replacing any earlier list.
func (db *DB) PutEvalBuilds(ctx context.Context, project, jobset string, evalID int, builds []int) (err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
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
	if _, err = tx.ExecContext(ctx, "DELETE FROM EvalBuilds WHERE Project = ? AND Jobset = ? AND EvalID = ?", project, jobset, evalID); err != nil {
		return err
	}
	if len(builds) == 0 {
		return nil
	}
	var args []interface{}
	for i, b := range builds {
		args = append(args, project, jobset, evalID, i, b)
	}
	query := "INSERT INTO EvalBuilds(Project, Jobset, EvalID, Position, BuildID) VALUES " + strings.Repeat("(?, ?, ?, ?, ?), ", len(builds))
	query = strings.TrimSuffix(query, ", ")
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// EvalBuilds returns the builds recorded for an evaluation. ok is
// false if the evaluation is not in the cache.
func (db *DB) EvalBuilds(ctx context.Context, project, jobset string, evalID int) (builds []int, ok bool, err error) {
	rows, err := db.selectBuilds.QueryContext(ctx, project, jobset, evalID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var b int
		if err := rows.Scan(&b); err != nil {
			return nil, false, err
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return builds, len(builds) > 0, nil
}

// CountMetas returns the number of builds in the cache.
func (db *DB) CountMetas() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Metas").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertMeta, db.selectMeta, db.selectBuilds} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
