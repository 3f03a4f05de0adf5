package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/tree"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInput string
	values    map[string]string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the label of a row",
		Long:  `Use the loaded tree to predict the label of a row given the values of its columns`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
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
			row, err := rowFromValues(t, config.values)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			prediction, err := t.Predict(ctx, row)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			fmt.Printf("Predicted %s is %s\n", t.ColumnName(t.LabelIndex), prediction)
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to use will be read and parsed as JSON (required)")
	cmd.Flags().StringToStringVar(&(config.values), "value", nil, "value of a column of the row as COLUMN=VALUE, can be given several times")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

// rowFromValues builds a row with the given values for the columns
// of the tree, leaving the rest missing
func rowFromValues(t *tree.Tree, values map[string]string) (dataset.Row, error) {
	row := make(dataset.Row, len(t.Header))
	for i := range row {
		row[i] = "?"
	}
	for name, value := range values {
		found := false
		for i, column := range t.Header {
			if column == name {
				row[i] = value
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("tree has no column named %s", name)
		}
	}
	return row, nil
}
