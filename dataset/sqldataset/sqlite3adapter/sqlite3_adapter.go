/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the sqldataset package that works
over an SQLite3 database.
*/
package sqlite3adapter

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/dataset/sqldataset"
)

/*
MaxRowInsertionsPerStatement is the maximum number
of rows that are allowed to be added with a single
insert command with the AddRows method of the adapter.
Trying to add more will result in making more insertion commands
*/
const MaxRowInsertionsPerStatement = 10

type adapter struct {
	db    *sql.DB
	table string
}

/*
New takes a path to an SQLite3 database file and the name of a table and
returns an Adapter that works on that table of the file's database or an
error if it fails to open as an sqlite3 database.
*/
func New(path, table string) (sqldataset.Adapter, error) {
	if table == "" || strings.ContainsAny(table, `"`) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &adapter{db, table}, nil
}

func (a *adapter) ColumnName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty names cannot be used as column names")
	}
	if strings.EqualFold(name, "rowid") {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as column name`, name)
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`column name '%s' contains invalid character '"'`, name)
	}
	return name, nil
}

func (a *adapter) Columns(ctx context.Context) ([]string, error) {
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s" LIMIT 0`, a.table))
	if err != nil {
		return nil, fmt.Errorf("querying columns of %s: %v", a.table, err)
	}
	defer rows.Close()
	return rows.Columns()
}

func (a *adapter) CreateTable(ctx context.Context, columns []string) error {
	var createStmtBuf bytes.Buffer
	fmt.Fprintf(&createStmtBuf, `CREATE TABLE IF NOT EXISTS "%s" (`, a.table)
	for i, c := range columns {
		if i > 0 {
			createStmtBuf.WriteString(", ")
		}
		fmt.Fprintf(&createStmtBuf, `"%s" TEXT NULL`, c)
	}
	createStmtBuf.WriteString(")")
	_, err := a.db.ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("ensuring table %s exists: %v", a.table, err)
	}
	return nil
}

func (a *adapter) AddRows(ctx context.Context, columns []string, rows dataset.Rows) (int, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("no columns to store")
	}
	var inserted int
	for chunkStart := 0; chunkStart < len(rows); chunkStart += MaxRowInsertionsPerStatement {
		chunkEnd := chunkStart + MaxRowInsertionsPerStatement
		if chunkEnd > len(rows) {
			chunkEnd = len(rows)
		}
		chunk := rows[chunkStart:chunkEnd]
		values := make([]interface{}, 0, len(chunk)*len(columns))
		for _, r := range chunk {
			if len(r) != len(columns) {
				return inserted, fmt.Errorf("row %d has %d values for %d columns", chunkStart, len(r), len(columns))
			}
			for _, v := range r {
				values = append(values, v)
			}
		}
		_, err := a.db.ExecContext(ctx, a.insertStmt(columns, len(chunk)), values...)
		if err != nil {
			return inserted, fmt.Errorf("inserting rows %d to %d: %v", chunkStart, chunkEnd-1, err)
		}
		inserted += len(chunk)
	}
	return inserted, nil
}

func (a *adapter) insertStmt(columns []string, count int) string {
	var insertStmtBuf bytes.Buffer
	fmt.Fprintf(&insertStmtBuf, `INSERT INTO "%s" ("%s") VALUES `, a.table, strings.Join(columns, `", "`))
	tuple := "(?" + strings.Repeat(", ?", len(columns)-1) + ")"
	for i := 0; i < count; i++ {
		if i > 0 {
			insertStmtBuf.WriteString(", ")
		}
		insertStmtBuf.WriteString(tuple)
	}
	return insertStmtBuf.String()
}

func (a *adapter) IterateRows(ctx context.Context, columns []string, lambda func(int, dataset.Row) (bool, error)) error {
	query := fmt.Sprintf(`SELECT "%s" FROM "%s" ORDER BY rowid`, strings.Join(columns, `", "`), a.table)
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		cells := make([]sql.NullString, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err = rows.Scan(dest...); err != nil {
			return err
		}
		row := make(dataset.Row, len(columns))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		ok, err := lambda(j, row)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) Close() error {
	return a.db.Close()
}
