package main

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/pbanos/arbor/config"
)

// settingsFlags hold command line overrides for the settings file
type settingsFlags struct {
	delimiter     string
	labelIndex    int
	header        bool
	bins          int
	folds         int
	epsilon       float64
	method        string
	pruneFraction float64
	maxDepth      int
	limit         int
	seed          int64
	continuous    []int
}

func addSettingsFlags(cmd *cobra.Command, sf *settingsFlags) {
	cmd.Flags().StringVarP(&(sf.delimiter), "delimiter", "d", "", "single character separating values on CSV input (overrides csv.delimiter)")
	cmd.Flags().IntVarP(&(sf.labelIndex), "label-index", "l", 0, "index of the column to predict (overrides csv.labelIndex)")
	cmd.Flags().BoolVar(&(sf.header), "header", true, "whether the first line of CSV input holds the column names (overrides csv.header)")
	cmd.Flags().IntVarP(&(sf.bins), "bins", "b", 0, "number of bins continuous columns are discretized in (overrides id3.bins)")
	cmd.Flags().IntVarP(&(sf.folds), "folds", "k", 0, "number of folds of the cross validation (overrides id3.folds)")
	cmd.Flags().Float64Var(&(sf.epsilon), "epsilon", 0, "quality change at which k-means stops iterating (overrides id3.epsilon)")
	cmd.Flags().StringVar(&(sf.method), "method", "", "discretization method, one of equal-frequency, equal-width or k-means (overrides id3.method)")
	cmd.Flags().Float64Var(&(sf.pruneFraction), "prune-fraction", 0, "share of rows held out for reduced-error pruning, 0 to skip it (overrides id3.pruneFraction)")
	cmd.Flags().IntVar(&(sf.maxDepth), "max-depth", 0, "maximum depth of the trees, 0 for no limit (overrides id3.maxDepth)")
	cmd.Flags().IntVar(&(sf.limit), "limit", 0, "number of leading rows to use, 0 for all (overrides id3.limit)")
	cmd.Flags().Int64Var(&(sf.seed), "seed", 0, "seed for the source of randomness, 0 to use the time (overrides id3.seed)")
	cmd.Flags().IntSliceVar(&(sf.continuous), "continuous", nil, "comma-separated indexes of the columns to discretize (overrides id3.continuous)")
}

// settings loads the settings file, or the default settings if none was
// given, applies the flags set on the command line and validates the result.
func (rcc *rootCmdConfig) settings(cmd *cobra.Command, sf *settingsFlags) (*config.Settings, error) {
	s := config.Default()
	if rcc.settingsFile != "" {
		var err error
		rcc.Logf("Reading settings from %s...", rcc.settingsFile)
		s, err = config.ReadSettingsFromFile(rcc.settingsFile)
		if err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("delimiter") {
		s.CSV.Delimiter = sf.delimiter
	}
	if flags.Changed("label-index") {
		s.CSV.LabelIndex = sf.labelIndex
	}
	if flags.Changed("header") {
		s.CSV.Header = sf.header
	}
	if flags.Changed("bins") {
		s.ID3.Bins = sf.bins
	}
	if flags.Changed("folds") {
		s.ID3.Folds = sf.folds
	}
	if flags.Changed("epsilon") {
		s.ID3.Epsilon = sf.epsilon
	}
	if flags.Changed("method") {
		s.ID3.Method = sf.method
	}
	if flags.Changed("prune-fraction") {
		s.ID3.PruneFraction = sf.pruneFraction
	}
	if flags.Changed("max-depth") {
		s.ID3.MaxDepth = sf.maxDepth
	}
	if flags.Changed("limit") {
		s.ID3.Limit = sf.limit
	}
	if flags.Changed("seed") {
		s.ID3.Seed = sf.seed
	}
	if flags.Changed("continuous") {
		s.ID3.Continuous = sf.continuous
	}
	return s, s.Validate()
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
