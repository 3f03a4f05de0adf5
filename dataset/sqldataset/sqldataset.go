package sqldataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/arbor/dataset"
)

/*
Adapter is an interface providing the methods
needed to keep a dataset on a database table.
*/
type Adapter interface {
	// ColumnName takes the name of a dataset column and returns
	// the name of the table column for it, or an error if it
	// cannot be used as a column name.
	ColumnName(string) (string, error)
	// Columns returns the names of the columns of the table
	// in their order of definition.
	Columns(context.Context) ([]string, error)
	// CreateTable creates the table with a TEXT column for
	// every given column if it does not exist yet.
	CreateTable(ctx context.Context, columns []string) error
	// AddRows inserts the rows in the table, with their values
	// in the order of the given columns, and returns the number
	// of rows inserted.
	AddRows(ctx context.Context, columns []string, rows dataset.Rows) (int, error)
	// IterateRows calls lambda with the index and values of
	// every row of the table for the given columns, a NULL cell
	// being passed as an empty string. The iteration stops when
	// lambda returns false or an error.
	IterateRows(ctx context.Context, columns []string, lambda func(int, dataset.Row) (bool, error)) error
	// Close releases the database connection
	Close() error
}

/*
Read takes a context, an Adapter and the name of the label column and
returns the dataset held in the adapter's table, with the table columns as
header. Rows with missing values are left out. An error is returned if the
table has no column with the label's name or it cannot be read.
*/
func Read(ctx context.Context, a Adapter, labelColumn string) (*dataset.Dataset, error) {
	columns, err := a.Columns(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing table columns: %v", err)
	}
	labelIndex := -1
	for i, c := range columns {
		if c == labelColumn {
			labelIndex = i
			break
		}
	}
	if labelIndex < 0 {
		return nil, fmt.Errorf("label column %q not in table columns %s: %w", labelColumn, strings.Join(columns, ", "), dataset.ErrLabelIndex)
	}
	var rows dataset.Rows
	err = a.IterateRows(ctx, columns, func(_ int, r dataset.Row) (bool, error) {
		if !dataset.HasMissing(r) {
			rows = append(rows, r)
		}
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading rows: %v", err)
	}
	return dataset.New(columns, rows, labelIndex)
}

/*
Write takes a context, an Adapter and a dataset with a header and stores
the dataset rows on the adapter's table, creating it if needed. It returns
the number of rows written or an error.
*/
func Write(ctx context.Context, a Adapter, d *dataset.Dataset) (int, error) {
	if len(d.Header) == 0 {
		return 0, fmt.Errorf("writing dataset without header to database")
	}
	columns := make([]string, len(d.Header))
	for i, h := range d.Header {
		c, err := a.ColumnName(h)
		if err != nil {
			return 0, err
		}
		columns[i] = c
	}
	err := a.CreateTable(ctx, columns)
	if err != nil {
		return 0, err
	}
	return a.AddRows(ctx, columns, d.Rows)
}
