/*
Package config provides the settings to grow decision trees from CSV files,
with their defaults and their parsing from YAML documents.

A settings document looks like this:

	csv:
	  file: churn_data.csv
	  delimiter: ";"
	  labelIndex: 9
	  header: true
	id3:
	  bins: 5
	  folds: 5
	  epsilon: 0.1
	  method: k-means
	  pruneFraction: 0.2
	  maxDepth: 0
	  limit: 0
	  seed: 0
	  continuous: [0, 3, 5, 9]

Properties left out of the document keep their default values.
*/
package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v2"
)

// CSV holds the settings to read the dataset
type CSV struct {
	// File is the path of the CSV file, "-" for the standard input
	File string `yaml:"file" validate:"required"`
	// Delimiter is the single character separating values
	Delimiter string `yaml:"delimiter" validate:"required,len=1"`
	// LabelIndex is the index of the column to predict
	LabelIndex int `yaml:"labelIndex" validate:"gte=0"`
	// Header tells whether the first line holds the column names
	Header bool `yaml:"header"`
}

// ID3 holds the settings to discretize the dataset and grow trees
type ID3 struct {
	// Bins is the number of bins continuous columns are discretized in
	Bins int `yaml:"bins" validate:"gte=1"`
	// Folds is the number of folds of the cross validation
	Folds int `yaml:"folds" validate:"gte=1"`
	// Epsilon is the quality change at which k-means stops iterating
	Epsilon float64 `yaml:"epsilon" validate:"gt=0"`
	// Method is the discretization method
	Method string `yaml:"method" validate:"oneof=equal-frequency equal-width k-means"`
	// PruneFraction is the share of rows held out for pruning, 0 to skip pruning
	PruneFraction float64 `yaml:"pruneFraction" validate:"gte=0,lt=1"`
	// MaxDepth limits the depth of trees, 0 for no limit
	MaxDepth int `yaml:"maxDepth" validate:"gte=0"`
	// Limit is the number of leading rows to use, 0 for all of them
	Limit int `yaml:"limit" validate:"gte=0"`
	// Seed initializes the source of randomness, 0 to seed it with the time
	Seed int64 `yaml:"seed"`
	// Continuous holds the indexes of the columns to discretize
	Continuous []int `yaml:"continuous" validate:"dive,gte=0"`
}

// Settings holds every setting to grow trees from a CSV file
type Settings struct {
	CSV CSV `yaml:"csv"`
	ID3 ID3 `yaml:"id3"`
}

var validate = validator.New()

/*
Default returns the default settings: the churn dataset in churn_data.csv,
separated by semicolons with a header and the label at index 9, discretized
with k-means in 5 bins and cross validated on 5 folds.
*/
func Default() *Settings {
	return &Settings{
		CSV: CSV{
			File:       "churn_data.csv",
			Delimiter:  ";",
			LabelIndex: 9,
			Header:     true,
		},
		ID3: ID3{
			Bins:          5,
			Folds:         5,
			Epsilon:       0.1,
			Method:        "k-means",
			PruneFraction: 0.2,
			Continuous:    []int{0, 3, 5, 9},
		},
	}
}

/*
ReadSettings takes a slice of bytes with settings in YAML and returns the
default settings overridden with the values in it, or an error if the
document cannot be parsed or the resulting settings are not valid.
*/
func ReadSettings(data []byte) (*Settings, error) {
	s := Default()
	err := yaml.UnmarshalStrict(data, s)
	if err != nil {
		return nil, fmt.Errorf("parsing yml settings: %v", err)
	}
	err = s.Validate()
	if err != nil {
		return nil, err
	}
	return s, nil
}

/*
ReadSettingsFromFile takes a filepath string, reads its contents and uses
ReadSettings to parse it and return the settings or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadSettingsFromFile(filepath string) (*Settings, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading settings yml file %s: %w", filepath, err)
	}
	s, err := ReadSettings(data)
	if err != nil {
		err = fmt.Errorf("parsing settings yml file %s: %w", filepath, err)
	}
	return s, err
}

// Validate returns an error describing every invalid setting, or nil
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// DelimiterRune returns the CSV delimiter as a rune
func (s *Settings) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(s.CSV.Delimiter)
	return r
}

// Marshal returns the settings as a YAML document
func (s *Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
