package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	redis "gopkg.in/redis.v5"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/discretize"
	"github.com/pbanos/arbor/tree"
	"github.com/pbanos/arbor/tree/json"
	"github.com/pbanos/arbor/tree/redisstore"
	"github.com/pbanos/arbor/tree/xml"
)

const (
	unprunedModelName = "best_model_without_pruning"
	prunedModelName   = "best_model_after_pruning"
)

type growCmdConfig struct {
	*rootCmdConfig
	settingsFlags
	datasetFlags
	dataInput     string
	output        string
	xmlDir        string
	compact       bool
	pruneStrategy string
	redisURL      string
	redisPrefix   string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree from a set of data to predict its label column: continuous columns are discretized, trees are cross validated and the best one is optionally pruned against a held out set of rows.`,
		Run: func(cmd *cobra.Command, args []string) {
			s, err := config.settings(cmd, &config.settingsFlags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			pruner, err := pruningStrategy(config.pruneStrategy)
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
			rnd := newRand(s.ID3.Seed)
			discretizer, err := discretize.ByName(s.ID3.Method, s.ID3.Epsilon, rnd)
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
			var pruningRows dataset.Rows
			trainingRows := d.Rows
			if s.ID3.PruneFraction > 0 {
				pruningRows, trainingRows, err = d.Split(s.ID3.PruneFraction, rnd)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
				config.Logf("Holding out %d rows for pruning", len(pruningRows))
			}
			opts := []arbor.Option{
				arbor.WithMaxDepth(s.ID3.MaxDepth),
				arbor.WithHeader(d.Header),
				arbor.WithPruner(pruner),
			}
			if config.redisURL != "" {
				ns, closeStore, err := config.redisNodeStore()
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(5)
				}
				defer closeStore()
				opts = append(opts, arbor.WithNodeStore(ns))
			}
			config.Logf("Growing trees on %d folds from %d rows to predict %s...", s.ID3.Folds, len(trainingRows), d.ColumnName(d.LabelIndex))
			trainer := arbor.ID3Trainer(opts...)
			cv, err := arbor.CrossValidate(ctx, trainingRows, d.LabelIndex, trainer, s.ID3.Folds, arbor.WithRand(rnd), arbor.WithLogger(config.Logger()))
			if err != nil {
				fmt.Fprintf(os.Stderr, "cross validating trees: %v\n", err)
				os.Exit(6)
			}
			err = reportCrossValidation(ctx, os.Stdout, "without pruning", cv)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
			best := cv.Best
			err = config.exportXML(ctx, unprunedModelName, best)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
			if len(pruningRows) > 0 {
				config.Logf("Growing and pruning trees on %d folds...", s.ID3.Folds)
				pcv, err := arbor.CrossValidate(ctx, trainingRows, d.LabelIndex, arbor.PruningTrainer(trainer, pruningRows), s.ID3.Folds, arbor.WithRand(rnd), arbor.WithLogger(config.Logger()))
				if err != nil {
					fmt.Fprintf(os.Stderr, "cross validating pruned trees: %v\n", err)
					os.Exit(7)
				}
				err = reportCrossValidation(ctx, os.Stdout, "after pruning", pcv)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(8)
				}
				best = pcv.Best
				err = config.exportXML(ctx, prunedModelName, best)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(8)
				}
			}
			err = config.exportJSON(ctx, best)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
		},
	}
	addSettingsFlags(cmd, &config.settingsFlags)
	addDatasetFlags(cmd, &config.datasetFlags)
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to use to grow the tree (defaults to csv.file on settings, - for STDIN interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the best tree will be written in JSON format (- for STDOUT, defaults to not writing it)")
	cmd.Flags().StringVarP(&(config.xmlDir), "xml-dir", "x", "", "path to a directory to which the best trees before and after pruning will be written in XML format (defaults to not writing them)")
	cmd.Flags().BoolVar(&(config.compact), "compact", false, "leave the training rows of every node out of the JSON output")
	cmd.Flags().StringVarP(&(config.pruneStrategy), "prune", "p", "none", "pruning strategy to apply while growing, the following are valid: none, minimum-description-length, minimum-information-gain:[VALUE]")
	cmd.Flags().StringVar(&(config.redisURL), "redis", "", "redis URL of a DB on which to store the nodes of the trees while growing them (defaults to memory)")
	cmd.Flags().StringVar(&(config.redisPrefix), "redis-prefix", "arbor", "prefix for the keys of the nodes stored on redis")
	return cmd
}

func (gcc *growCmdConfig) redisNodeStore() (tree.NodeStore, func(), error) {
	opts, err := redis.ParseURL(gcc.redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing redis url %s: %v", gcc.redisURL, err)
	}
	rc := redis.NewClient(opts)
	err = rc.Ping().Err()
	if err != nil {
		rc.Close()
		return nil, nil, fmt.Errorf("connecting to redis at %s: %v", gcc.redisURL, err)
	}
	gcc.Logf("Storing nodes on redis at %s under prefix %s", gcc.redisURL, gcc.redisPrefix)
	return redisstore.New(rc, gcc.redisPrefix, json.NewNodeEncodeDecoder()), func() { rc.Close() }, nil
}

func (gcc *growCmdConfig) exportXML(ctx context.Context, name string, t *tree.Tree) error {
	if gcc.xmlDir == "" {
		return nil
	}
	path := filepath.Join(gcc.xmlDir, name+".xml")
	gcc.Logf("Writing %s...", path)
	return xml.WriteXMLTreeToFile(ctx, t, path)
}

func (gcc *growCmdConfig) exportJSON(ctx context.Context, t *tree.Tree) error {
	if gcc.output == "" {
		return nil
	}
	ned := json.NewNodeEncodeDecoder()
	if gcc.compact {
		ned = json.NewCompactNodeEncodeDecoder()
	}
	if gcc.output == "-" {
		return json.WriteJSONTree(ctx, t, ned, os.Stdout)
	}
	f, err := os.Create(gcc.output)
	if err != nil {
		return fmt.Errorf("creating %s: %v", gcc.output, err)
	}
	defer f.Close()
	gcc.Logf("Writing tree to %s...", gcc.output)
	return json.WriteJSONTree(ctx, t, ned, f)
}

// reportCrossValidation writes the accuracy of every fold and the
// shape of the best tree to w
func reportCrossValidation(ctx context.Context, w io.Writer, title string, cv *arbor.CrossValidation) error {
	fmt.Fprintf(w, "Cross validation %s\n", title)
	for _, f := range cv.Folds {
		fmt.Fprintf(w, "  %s fold: %s accuracy on %s rows, trained on %s rows\n",
			humanize.Ordinal(f.Index+1),
			percent(f.Accuracy),
			humanize.Comma(int64(len(f.Validation))),
			humanize.Comma(int64(len(f.Training))))
	}
	nodes, leaves, err := cv.Best.Size(ctx)
	if err != nil {
		return err
	}
	depth, err := cv.Best.Depth(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Best accuracy: %s on the %s fold, with %s nodes (%s leaves) and depth %d\n",
		percent(cv.BestAccuracy()),
		humanize.Ordinal(cv.BestFold+1),
		humanize.Comma(int64(nodes)),
		humanize.Comma(int64(leaves)),
		depth)
	return nil
}

func percent(v float64) string {
	return humanize.FtoaWithDigits(v*100, 2) + "%"
}

func pruningStrategy(ps string) (arbor.Pruner, error) {
	parsedPS := strings.Split(ps, ":")
	ps = parsedPS[0]
	psParams := parsedPS[1:]
	switch ps {
	case "none", "":
		return arbor.NoPruner(), nil
	case "minimum-description-length":
		return arbor.MinimumDescriptionLengthPruner(), nil
	case "minimum-information-gain":
		if len(psParams) != 1 {
			return nil, fmt.Errorf("minimum-information-gain pruning strategy takes exactly one parameter")
		}
		minimum, err := strconv.ParseFloat(psParams[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing minimum-information-gain parameter: %v", err)
		}
		return arbor.FixedInformationGainPruner(minimum), nil
	}
	return nil, fmt.Errorf("unknown pruning strategy %s", ps)
}
