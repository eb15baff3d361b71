// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "team-matrix",
	Short: "A CLI tool to score GitHub contributions per team.",
	Long: `team-matrix scores the commits of every repository of a GitHub organization,
grouping repositories into teams, and writes a login × team matrix as
tab-separated values. Older commits count less: a commit loses three quarters
of its weight every year.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

// newLogger builds the command's logger. Diagnostics always go to stderr; --verbose adds debug output.
func newLogger(cmd *cobra.Command, out io.Writer) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger.WithField("cmd", cmd.Name())
}
