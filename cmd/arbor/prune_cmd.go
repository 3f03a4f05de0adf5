package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/tree/json"
)

type pruneCmdConfig struct {
	*rootCmdConfig
	settingsFlags
	datasetFlags
	treeInput string
	dataInput string
	output    string
}

func pruneCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &pruneCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Prune a tree against a validation set",
		Long:  `Apply reduced-error pruning to a tree grown with its training rows, replacing the subtrees that do not improve its accuracy on a validation set with leaves`,
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
			config.Logf("Pruning tree against validation set with %d rows...", len(d.Rows))
			report, err := arbor.Prune(ctx, t, d.Rows, t.LabelIndex)
			if err != nil {
				fmt.Fprintf(os.Stderr, "pruning tree: %v\n", err)
				os.Exit(4)
			}
			config.Logger().WithField("evaluated", report.Evaluated).WithField("replaced", report.Replaced).Info("tree pruned")
			out := os.Stdout
			if config.output != "" && config.output != "-" {
				out, err = os.Create(config.output)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(5)
				}
				defer out.Close()
			}
			err = json.WriteJSONTree(ctx, t, json.NewNodeEncodeDecoder(), out)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	addSettingsFlags(cmd, &config.settingsFlags)
	addDatasetFlags(cmd, &config.datasetFlags)
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the validation set (defaults to csv.file on settings, - for STDIN interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to prune will be read and parsed as JSON, including the training rows of its nodes (required)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the pruned tree will be written in JSON format (defaults to STDOUT)")
	return cmd
}

func (pcc *pruneCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}
