package mongodataset

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/pbanos/arbor/dataset"
)

func TestValidColumnName(t *testing.T) {
	assert.NoError(t, validColumnName("Geography"))
	assert.Error(t, validColumnName(""))
	assert.Error(t, validColumnName("_id"))
	assert.Error(t, validColumnName("a.b"))
	assert.Error(t, validColumnName("$a"))
}

func TestDocumentRow(t *testing.T) {
	columns := []string{"Age", "Geography", "Exited"}
	row, ok := documentRow(bson.M{"Age": 42.5, "Geography": "France", "Exited": 1}, columns)
	assert.True(t, ok)
	assert.Equal(t, dataset.Row{"42.5", "France", "1"}, row)

	_, ok = documentRow(bson.M{"Age": 42.0, "Exited": 1}, columns)
	assert.False(t, ok)
	_, ok = documentRow(bson.M{"Age": "NA", "Geography": "France", "Exited": 1}, columns)
	assert.False(t, ok)
}

// TestCollection runs against the MongoDB database at ARBOR_TEST_MONGO_URL
func TestCollection(t *testing.T) {
	url := os.Getenv("ARBOR_TEST_MONGO_URL")
	if url == "" {
		t.Skip("ARBOR_TEST_MONGO_URL not set")
	}
	session, err := mgo.Dial(url)
	require.NoError(t, err)
	defer session.Close()
	ctx := context.Background()
	header := []string{"outlook", "play"}
	c, err := Open(ctx, session, "arbor_test_rows", header)
	require.NoError(t, err)
	defer c.collection().DropCollection()

	d := &dataset.Dataset{Header: header, Rows: dataset.Rows{{"sunny", "no"}, {"NA", "yes"}, {"rain", "yes"}}, LabelIndex: 1}
	n, err := c.Write(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	read, err := c.Read(ctx, header, "play")
	require.NoError(t, err)
	assert.Equal(t, dataset.Rows{{"sunny", "no"}, {"rain", "yes"}}, read.Rows)
}
