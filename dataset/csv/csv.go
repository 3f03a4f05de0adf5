/*
Package csv reads datasets from and writes them to CSV streams.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/arbor/dataset"
)

/*
Options configure how a CSV stream is parsed into a dataset
*/
type Options struct {
	// Delimiter is the field separator, ',' if zero
	Delimiter rune
	// Header tells whether the first record holds the column names
	Header bool
	// LabelIndex is the index of the label column
	LabelIndex int
}

/*
ReadDatasetByRow takes an io.Reader for a CSV stream, Options and a lambda
function on an integer and a dataset.Row that returns a boolean value.
It parses the rows from the reader and for each it calls the lambda function
with the row and its index as parameters. Rows holding a missing value (see
dataset.IsMissing) are skipped. If the lambda function returns true, it will
continue processing the next row, otherwise it will stop. The header, if the
options say the stream has one, is returned. An error is returned if something
goes wrong when reading the stream or a row has not the same number of values
as the first record.
*/
func ReadDatasetByRow(reader io.Reader, opts Options, lambda func(int, dataset.Row) (bool, error)) ([]string, error) {
	r := csv.NewReader(reader)
	if opts.Delimiter != 0 {
		r.Comma = opts.Delimiter
	}
	r.FieldsPerRecord = -1
	var header []string
	width, line := -1, 1
	if opts.Header {
		record, err := r.Read()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading header: %v", err)
		}
		header = record
		width = len(record)
		line++
	}
	for i, l := 0, line; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return header, fmt.Errorf("reading body: %v", err)
		}
		if width < 0 {
			width = len(record)
		}
		if len(record) != width {
			return header, fmt.Errorf("line %d has %d values, expected %d: %w", l, len(record), width, dataset.ErrRowLength)
		}
		row := dataset.Row(record)
		if dataset.HasMissing(row) {
			continue
		}
		ok, err := lambda(i, row)
		if err != nil {
			return header, err
		}
		if !ok {
			break
		}
		i++
	}
	return header, nil
}

/*
ReadDataset takes an io.Reader for a CSV stream and Options and returns
the dataset parsed from it, with rows holding missing values left out.
*/
func ReadDataset(reader io.Reader, opts Options) (*dataset.Dataset, error) {
	var rows dataset.Rows
	header, err := ReadDatasetByRow(reader, opts, func(_ int, r dataset.Row) (bool, error) {
		rows = append(rows, r)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(header, rows, opts.LabelIndex)
}

/*
ReadDatasetFromFilePath takes a filepath string and Options, opens the file
to which the filepath points to and uses ReadDataset to return the dataset
in it. If the filepath is "" os.Stdin is read instead. It will return an
error if the given filepath cannot be opened for reading.
*/
func ReadDatasetFromFilePath(filepath string, opts Options) (*dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %w", err)
		}
	}
	defer f.Close()
	d, err := ReadDataset(f, opts)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return d, err
}

/*
WriteDataset takes a writer, a dataset and a delimiter (',' if zero) and
dumps the dataset to the writer in CSV format, its header first if it has
one. It returns an error if something went wrong when writing to the writer.
*/
func WriteDataset(writer io.Writer, d *dataset.Dataset, delimiter rune) error {
	w := csv.NewWriter(writer)
	if delimiter != 0 {
		w.Comma = delimiter
	}
	if d.Header != nil {
		if err := w.Write(d.Header); err != nil {
			return fmt.Errorf("writing CSV header: %v", err)
		}
	}
	for i, r := range d.Rows {
		if err := w.Write(r); err != nil {
			return fmt.Errorf("writing CSV row %d: %v", i+1, err)
		}
	}
	w.Flush()
	return w.Error()
}

/*
WriteDatasetToFilePath creates the file at filepath, or uses os.Stdout if
filepath is "", and writes the dataset on it with WriteDataset.
*/
func WriteDatasetToFilePath(filepath string, d *dataset.Dataset, delimiter rune) error {
	if filepath == "" {
		return WriteDataset(os.Stdout, d, delimiter)
	}
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath, err)
	}
	defer f.Close()
	return WriteDataset(f, d, delimiter)
}
