package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose      bool
	settingsFile string
	logger       *logrus.Logger
	ctx          context.Context
	cancelFunc   context.CancelFunc
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "arbor is a tool to grow ID3 decision trees",
		Long:  `A tool to discretize your data, grow decision trees from it with cross validation and reduced-error pruning, test them, and use them to make predictions`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if config.cancelFunc != nil {
			config.cancelFunc()
		}
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.PersistentFlags().StringVar(&(config.settingsFile), "config", "", "path to a YML file with settings (defaults to built-in settings)")
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(config),
		testCmd(config),
		discretizeCmd(config),
		treeCmd(config),
		predictCmd(config),
		pruneCmd(config),
	)
	return rootCmd
}

func (rcc *rootCmdConfig) Context() context.Context {
	rcc.setContextAndCancelFunc()
	return rcc.ctx
}

func (rcc *rootCmdConfig) setContextAndCancelFunc() {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = context.WithCancel(context.Background())
	}
}
