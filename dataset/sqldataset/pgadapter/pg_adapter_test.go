package pgadapter

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/arbor/dataset"
)

func TestInsertStmt(t *testing.T) {
	a := &adapter{table: "customers"}
	assert.Equal(t,
		`INSERT INTO "customers" ("a", "b") VALUES ($1, $2), ($3, $4)`,
		a.insertStmt([]string{"a", "b"}, 2))
}

func TestColumnName(t *testing.T) {
	a := &adapter{table: "customers"}
	name, err := a.ColumnName("Geography")
	require.NoError(t, err)
	assert.Equal(t, "Geography", name)
	_, err = a.ColumnName("ctid")
	assert.Error(t, err)
	_, err = a.ColumnName(`a"b`)
	assert.Error(t, err)
}

// TestAdapter runs against the database at ARBOR_TEST_POSTGRES_URL
func TestAdapter(t *testing.T) {
	url := os.Getenv("ARBOR_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("ARBOR_TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()
	a, err := New(url, "arbor_test_rows")
	require.NoError(t, err)
	defer a.Close()
	columns := []string{"outlook", "play"}
	require.NoError(t, a.CreateTable(ctx, columns))
	n, err := a.AddRows(ctx, columns, dataset.Rows{{"sunny", "no"}, {"rain", "yes"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	got, err := a.Columns(ctx)
	require.NoError(t, err)
	assert.Equal(t, columns, got)
	var read int
	err = a.IterateRows(ctx, columns, func(i int, r dataset.Row) (bool, error) {
		read++
		return true, nil
	})
	require.NoError(t, err)
	assert.True(t, read >= 2)
}
