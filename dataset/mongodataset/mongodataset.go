/*
Package mongodataset reads datasets from and writes them to a
MongoDB collection, with one document per row and one field
per column.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/pbanos/arbor/dataset"
)

/*
Collection is a MongoDB collection holding the rows of a dataset
*/
type Collection struct {
	session *mgo.Session
	name    string
}

/*
Open takes a MongoDB database session, the name of a collection and the
names of the dataset columns and returns a Collection on the default
database for that session, ensuring an index for every column, or an
error if a column name cannot be used as document field.
*/
func Open(ctx context.Context, session *mgo.Session, name string, columns []string) (*Collection, error) {
	c := &Collection{session, name}
	err := c.ensureIndexes(ctx, columns)
	if err != nil {
		return nil, err
	}
	return c, nil
}

/*
Write takes a context and a dataset with a header and inserts a document
per row in the collection. It returns the number of rows written or an
error.
*/
func (c *Collection) Write(ctx context.Context, d *dataset.Dataset) (int, error) {
	if len(d.Header) == 0 {
		return 0, fmt.Errorf("writing dataset without header to collection %s", c.name)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	docs := make([]interface{}, 0, len(d.Rows))
	for _, r := range d.Rows {
		doc := make(bson.M)
		for i, name := range d.Header {
			if !dataset.IsMissing(r[i]) {
				doc[name] = r[i]
			}
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return 0, nil
	}
	err := c.collection().Insert(docs...)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

/*
Read takes a context, the names of the columns to read and the name of the
label column and returns a dataset with a row per document in the
collection. Documents lacking any of the columns are left out. Numbers are
formatted with the fewest digits that represent them.
*/
func (c *Collection) Read(ctx context.Context, columns []string, labelColumn string) (*dataset.Dataset, error) {
	labelIndex := -1
	for i, name := range columns {
		if name == labelColumn {
			labelIndex = i
		}
	}
	if labelIndex < 0 {
		return nil, fmt.Errorf("label column %q not in %s: %w", labelColumn, strings.Join(columns, ", "), dataset.ErrLabelIndex)
	}
	var rows dataset.Rows
	var doc bson.M
	iter := c.collection().Find(nil).Sort("_id").Iter()
	defer iter.Close()
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, ok := documentRow(doc, columns)
		if ok {
			rows = append(rows, row)
		}
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return dataset.New(columns, rows, labelIndex)
}

func documentRow(doc bson.M, columns []string) (dataset.Row, bool) {
	row := make(dataset.Row, len(columns))
	for i, name := range columns {
		v, ok := doc[name]
		if !ok || v == nil {
			return nil, false
		}
		switch tv := v.(type) {
		case string:
			row[i] = tv
		case float64:
			row[i] = strconv.FormatFloat(tv, 'f', -1, 64)
		default:
			row[i] = fmt.Sprint(tv)
		}
		if dataset.IsMissing(row[i]) {
			return nil, false
		}
	}
	return row, true
}

func (c *Collection) ensureIndexes(ctx context.Context, columns []string) error {
	for _, name := range columns {
		if err := validColumnName(name); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		index := mgo.Index{
			Key:        []string{name},
			Background: true,
			Sparse:     true,
		}
		err := c.collection().EnsureIndex(index)
		if err != nil {
			return err
		}
	}
	return nil
}

func validColumnName(name string) error {
	if name == "" {
		return fmt.Errorf("invalid column name: empty")
	}
	if name == "_id" {
		return fmt.Errorf("invalid column name %q: reserved collection field", "_id")
	}
	if strings.ContainsAny(name, ".$") {
		return fmt.Errorf("invalid column name %q: contains reserved characters %q or %q", name, ".", "$")
	}
	return nil
}

func (c *Collection) collection() *mgo.Collection {
	return c.session.DB("").C(c.name)
}
