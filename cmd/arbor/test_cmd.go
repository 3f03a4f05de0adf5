package main

import (
	"fmt"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	settingsFlags
	datasetFlags
	treeInput string
	dataInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set whose columns have already been discretized`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			s, err := config.settings(cmd, &config.settingsFlags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := config.Context()
			t, err := loadTree(ctx, config.treeInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			if !cmd.Flags().Changed("label-index") {
				s.CSV.LabelIndex = t.LabelIndex
			}
			d, err := config.readDataset(ctx, config.dataInput, &config.datasetFlags, s)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			if d.LabelIndex != t.LabelIndex {
				fmt.Fprintf(os.Stderr, "tree predicts column %d but the label of the test set is column %d\n", t.LabelIndex, d.LabelIndex)
				os.Exit(4)
			}
			config.Logf("Testing tree against test set with %d rows...", len(d.Rows))
			successRate, errorCount, err := t.Test(ctx, d.Rows)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing tree: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done")
			fmt.Printf("%s success rate on %s rows, failed to make a prediction for %s rows\n",
				percent(successRate), humanize.Comma(int64(len(d.Rows))), humanize.Comma(int64(errorCount)))
		},
	}
	addSettingsFlags(cmd, &config.settingsFlags)
	addDatasetFlags(cmd, &config.datasetFlags)
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to test the tree against (defaults to csv.file on settings, - for STDIN interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON (required)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}
