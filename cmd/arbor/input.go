package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"

	"github.com/pbanos/arbor/config"
	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/dataset/csv"
	"github.com/pbanos/arbor/dataset/mongodataset"
	"github.com/pbanos/arbor/dataset/sqldataset"
	"github.com/pbanos/arbor/dataset/sqldataset/pgadapter"
	"github.com/pbanos/arbor/dataset/sqldataset/sqlite3adapter"
)

const (
	csvSource        = "csv"
	sqlite3Source    = "sqlite3"
	postgreSQLSource = "postgresql"
	mongoDBSource    = "mongodb"
)

// sourceKind tells the kind of source a dataset location refers to
func sourceKind(location string) string {
	switch {
	case strings.HasPrefix(location, "postgresql://"), strings.HasPrefix(location, "postgres://"):
		return postgreSQLSource
	case strings.HasPrefix(location, "mongodb://"):
		return mongoDBSource
	case strings.HasSuffix(location, ".db"):
		return sqlite3Source
	}
	return csvSource
}

type datasetFlags struct {
	table       string
	labelColumn string
	columns     []string
}

func addDatasetFlags(cmd *cobra.Command, df *datasetFlags) {
	cmd.Flags().StringVar(&(df.table), "table", "dataset", "name of the table or collection holding the dataset on SQLite3, PostgreSQL and MongoDB sources")
	cmd.Flags().StringVarP(&(df.labelColumn), "label", "c", "", "name of the label column on database sources (defaults to the column at the label index)")
	cmd.Flags().StringSliceVar(&(df.columns), "columns", nil, "comma-separated names of the fields of the documents on MongoDB sources (required for MongoDB)")
}

/*
readDataset reads the dataset at the given location, falling back to the
settings' CSV file when the location is empty. A location of "-" reads CSV
from STDIN. Only the settings' leading rows are kept when a limit is set.
*/
func (rcc *rootCmdConfig) readDataset(ctx context.Context, location string, df *datasetFlags, s *config.Settings) (*dataset.Dataset, error) {
	if location == "" {
		location = s.CSV.File
	}
	var d *dataset.Dataset
	var err error
	switch sourceKind(location) {
	case postgreSQLSource:
		rcc.Logf("Creating PostgreSQL adapter for url %s to read dataset...", location)
		var a sqldataset.Adapter
		a, err = pgadapter.New(location, df.table)
		if err != nil {
			return nil, err
		}
		defer a.Close()
		d, err = rcc.readSQLDataset(ctx, a, df, s)
	case sqlite3Source:
		rcc.Logf("Creating SQLite3 adapter for file %s to read dataset...", location)
		var a sqldataset.Adapter
		a, err = sqlite3adapter.New(location, df.table)
		if err != nil {
			return nil, err
		}
		defer a.Close()
		d, err = rcc.readSQLDataset(ctx, a, df, s)
	case mongoDBSource:
		d, err = rcc.readMongoDBDataset(ctx, location, df, s)
	default:
		if location == "-" {
			rcc.Logf("Reading dataset from STDIN...")
			location = ""
		} else {
			rcc.Logf("Opening %s to read dataset...", location)
		}
		d, err = csv.ReadDatasetFromFilePath(location, csv.Options{
			Delimiter:  s.DelimiterRune(),
			Header:     s.CSV.Header,
			LabelIndex: s.CSV.LabelIndex,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	if s.ID3.Limit > 0 && len(d.Rows) > s.ID3.Limit {
		rcc.Logf("Keeping the first %d of %d rows", s.ID3.Limit, len(d.Rows))
		d.Rows = d.Rows[:s.ID3.Limit]
	}
	return d, nil
}

func (rcc *rootCmdConfig) readSQLDataset(ctx context.Context, a sqldataset.Adapter, df *datasetFlags, s *config.Settings) (*dataset.Dataset, error) {
	label := df.labelColumn
	if label == "" {
		columns, err := a.Columns(ctx)
		if err != nil {
			return nil, err
		}
		label = dataset.ColumnName(columns, s.CSV.LabelIndex)
	}
	return sqldataset.Read(ctx, a, label)
}

func (rcc *rootCmdConfig) readMongoDBDataset(ctx context.Context, url string, df *datasetFlags, s *config.Settings) (*dataset.Dataset, error) {
	if len(df.columns) == 0 {
		return nil, fmt.Errorf("required columns flag was not set for MongoDB source")
	}
	rcc.Logf("Connecting to MongoDB at %s to read dataset...", url)
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	c, err := mongodataset.Open(ctx, session, df.table, df.columns)
	if err != nil {
		return nil, err
	}
	label := df.labelColumn
	if label == "" {
		label = dataset.ColumnName(df.columns, s.CSV.LabelIndex)
	}
	return c.Read(ctx, df.columns, label)
}

/*
writeDataset writes the dataset to the given location: a SQLite3 file,
a PostgreSQL or MongoDB URL, or otherwise a CSV file ("" or "-" for
STDOUT) with the settings' delimiter.
*/
func (rcc *rootCmdConfig) writeDataset(ctx context.Context, location string, df *datasetFlags, d *dataset.Dataset, s *config.Settings) error {
	var count int
	var err error
	switch sourceKind(location) {
	case postgreSQLSource:
		var a sqldataset.Adapter
		a, err = pgadapter.New(location, df.table)
		if err != nil {
			return err
		}
		defer a.Close()
		count, err = sqldataset.Write(ctx, a, d)
	case sqlite3Source:
		var a sqldataset.Adapter
		a, err = sqlite3adapter.New(location, df.table)
		if err != nil {
			return err
		}
		defer a.Close()
		count, err = sqldataset.Write(ctx, a, d)
	case mongoDBSource:
		var session *mgo.Session
		session, err = mgo.Dial(location)
		if err != nil {
			return err
		}
		defer session.Close()
		var c *mongodataset.Collection
		c, err = mongodataset.Open(ctx, session, df.table, d.Header)
		if err != nil {
			return err
		}
		count, err = c.Write(ctx, d)
	default:
		if location == "-" {
			location = ""
		}
		count = len(d.Rows)
		err = csv.WriteDatasetToFilePath(location, d, s.DelimiterRune())
	}
	if err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	rcc.Logf("%d rows written", count)
	return nil
}
