package sqlite3adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/arbor/dataset"
)

func TestInsertStmt(t *testing.T) {
	a := &adapter{table: "customers"}
	assert.Equal(t,
		`INSERT INTO "customers" ("a", "b") VALUES (?, ?), (?, ?)`,
		a.insertStmt([]string{"a", "b"}, 2))
}

func TestNewInvalidTable(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.db"), `bad"table`)
	assert.Error(t, err)
	_, err = New(filepath.Join(t.TempDir(), "x.db"), "")
	assert.Error(t, err)
}

func TestAddRowsInChunks(t *testing.T) {
	ctx := context.Background()
	a, err := New(filepath.Join(t.TempDir(), "rows.db"), "rows")
	require.NoError(t, err)
	defer a.Close()
	columns := []string{"n", "parity"}
	require.NoError(t, a.CreateTable(ctx, columns))
	rows := make(dataset.Rows, 2*MaxRowInsertionsPerStatement+3)
	for i := range rows {
		rows[i] = dataset.Row{string(rune('a' + i)), "even"}
	}
	n, err := a.AddRows(ctx, columns, rows)
	require.NoError(t, err)
	assert.Equal(t, len(rows), n)

	var read dataset.Rows
	err = a.IterateRows(ctx, columns, func(i int, r dataset.Row) (bool, error) {
		read = append(read, r)
		return i < 4, nil
	})
	require.NoError(t, err)
	assert.Equal(t, rows[:5], read)

	_, err = a.AddRows(ctx, columns, dataset.Rows{{"only one"}})
	assert.Error(t, err)
}

func TestReservedColumnName(t *testing.T) {
	a := &adapter{table: "rows"}
	_, err := a.ColumnName("ROWID")
	assert.Error(t, err)
	_, err = a.ColumnName("")
	assert.Error(t, err)
}
