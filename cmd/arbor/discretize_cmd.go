package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pbanos/arbor/discretize"
)

type discretizeCmdConfig struct {
	*rootCmdConfig
	settingsFlags
	datasetFlags
	dataInput string
	output    string
}

func discretizeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &discretizeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "discretize",
		Short: "Discretize the continuous columns of a set of data",
		Long:  `Discretize the continuous columns of a set of data, replacing their values with the labels of the bins they fall in, and write the result`,
		Run: func(cmd *cobra.Command, args []string) {
			s, err := config.settings(cmd, &config.settingsFlags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := config.Context()
			d, err := config.readDataset(ctx, config.dataInput, &config.datasetFlags, s)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			discretizer, err := discretize.ByName(s.ID3.Method, s.ID3.Epsilon, newRand(s.ID3.Seed))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Discretizing columns %v in %d bins with %s...", s.ID3.Continuous, s.ID3.Bins, s.ID3.Method)
			err = discretize.All(s.ID3.Bins, d, discretizer, s.ID3.Continuous)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			err = config.writeDataset(ctx, config.output, &config.datasetFlags, d, s)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
		},
	}
	addSettingsFlags(cmd, &config.settingsFlags)
	addDatasetFlags(cmd, &config.datasetFlags)
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to discretize (defaults to csv.file on settings, - for STDIN interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to an output CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to write the discretized data to (defaults to STDOUT as CSV)")
	return cmd
}
