package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, "churn_data.csv", s.CSV.File)
	assert.Equal(t, ';', s.DelimiterRune())
	assert.Equal(t, 9, s.CSV.LabelIndex)
	assert.Equal(t, 5, s.ID3.Bins)
	assert.Equal(t, 5, s.ID3.Folds)
	assert.Equal(t, 0.1, s.ID3.Epsilon)
	assert.Equal(t, "k-means", s.ID3.Method)
}

func TestReadSettingsOverridesDefaults(t *testing.T) {
	s, err := ReadSettings([]byte(`
csv:
  file: weather.csv
  delimiter: ","
id3:
  bins: 3
  method: equal-width
  continuous: [1]
`))
	require.NoError(t, err)
	assert.Equal(t, "weather.csv", s.CSV.File)
	assert.Equal(t, ',', s.DelimiterRune())
	assert.Equal(t, 9, s.CSV.LabelIndex)
	assert.True(t, s.CSV.Header)
	assert.Equal(t, 3, s.ID3.Bins)
	assert.Equal(t, 5, s.ID3.Folds)
	assert.Equal(t, "equal-width", s.ID3.Method)
	assert.Equal(t, []int{1}, s.ID3.Continuous)
}

func TestReadSettingsInvalid(t *testing.T) {
	for _, doc := range []string{
		"id3:\n  bins: 0\n",
		"id3:\n  method: median\n",
		"id3:\n  pruneFraction: 1.5\n",
		"csv:\n  delimiter: ';;'\n",
		"id3:\n  continuous: [-1]\n",
	} {
		_, err := ReadSettings([]byte(doc))
		if assert.Error(t, err, doc) {
			var verrs validator.ValidationErrors
			assert.True(t, errors.As(err, &verrs), doc)
		}
	}
	_, err := ReadSettings([]byte("id3:\n  unknown: 1\n"))
	assert.Error(t, err)
	_, err = ReadSettings([]byte("csv: ["))
	assert.Error(t, err)
}

func TestReadSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arbor.yml")
	data, err := Default().Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	s, err := ReadSettingsFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	_, err = ReadSettingsFromFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
