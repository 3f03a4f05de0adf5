package csv

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/arbor/dataset"
)

const churnCSV = `CreditScore;Geography;Age;Exited
619;France;42;1
608;Spain;NA;0
502;France;42;1
699;France;39;0
`

func TestReadDataset(t *testing.T) {
	d, err := ReadDataset(strings.NewReader(churnCSV), Options{Delimiter: ';', Header: true, LabelIndex: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"CreditScore", "Geography", "Age", "Exited"}, d.Header)
	assert.Equal(t, 3, d.LabelIndex)
	assert.Equal(t, dataset.Rows{
		{"619", "France", "42", "1"},
		{"502", "France", "42", "1"},
		{"699", "France", "39", "0"},
	}, d.Rows)
}

func TestReadDatasetWithoutHeader(t *testing.T) {
	d, err := ReadDataset(strings.NewReader("a,yes\nb,no\n"), Options{LabelIndex: 1})
	require.NoError(t, err)
	assert.Nil(t, d.Header)
	assert.Len(t, d.Rows, 2)
	assert.Equal(t, "column 0", d.ColumnName(0))
}

func TestReadDatasetInconsistentRows(t *testing.T) {
	_, err := ReadDataset(strings.NewReader("a;b\n1;2\n3\n"), Options{Delimiter: ';', Header: true, LabelIndex: 1})
	if assert.Error(t, err) {
		assert.True(t, errors.Is(err, dataset.ErrRowLength))
		assert.Contains(t, err.Error(), "line 3")
	}
}

func TestReadDatasetLabelOutOfRange(t *testing.T) {
	_, err := ReadDataset(strings.NewReader(churnCSV), Options{Delimiter: ';', Header: true, LabelIndex: 9})
	assert.True(t, errors.Is(err, dataset.ErrLabelIndex))
}

func TestReadDatasetByRowStops(t *testing.T) {
	var seen []int
	header, err := ReadDatasetByRow(strings.NewReader(churnCSV), Options{Delimiter: ';', Header: true}, func(i int, r dataset.Row) (bool, error) {
		seen = append(seen, i)
		return i < 1, nil
	})
	require.NoError(t, err)
	assert.Len(t, header, 4)
	assert.Equal(t, []int{0, 1}, seen)
}

func TestWriteAndReadFile(t *testing.T) {
	d, err := ReadDataset(strings.NewReader(churnCSV), Options{Delimiter: ';', Header: true, LabelIndex: 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDataset(&buf, d, ';'))
	assert.Equal(t, "CreditScore;Geography;Age;Exited\n619;France;42;1\n502;France;42;1\n699;France;39;0\n", buf.String())

	path := filepath.Join(t.TempDir(), "churn.csv")
	require.NoError(t, WriteDatasetToFilePath(path, d, ','))
	read, err := ReadDatasetFromFilePath(path, Options{Header: true, LabelIndex: 3})
	require.NoError(t, err)
	assert.Equal(t, d, read)

	_, err = ReadDatasetFromFilePath(filepath.Join(t.TempDir(), "missing.csv"), Options{})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
