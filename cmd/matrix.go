package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/naka-gawa/team-matrix/internal/config"
	"github.com/naka-gawa/team-matrix/internal/gateway"
	"github.com/naka-gawa/team-matrix/internal/grouping"
	"github.com/naka-gawa/team-matrix/internal/usecase"
	"github.com/spf13/cobra"
)

// newFetcher is swapped in tests.
var newFetcher = gateway.NewGitHubGateway

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Scores contributions per group and writes the login × group matrix",
	Long: `Reads the grouping file, warns about public repositories that belong to no group,
scores every commit of every grouped repository with a yearly decay and writes
the resulting matrix to the output file, replacing its previous content.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runMatrix(ctx, cmd)
	},
}

func runMatrix(ctx context.Context, cmd *cobra.Command) error {
	logger := newLogger(cmd, cmd.ErrOrStderr())

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	groups, err := grouping.Load(cfg.GroupsFile)
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(cfg.Token, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	reporter := usecase.NewReporter(fetcher, logger)

	matrix, err := reporter.Run(ctx, usecase.Options{
		Organization: cfg.Organization,
		Groups:       groups,
		Now:          cfg.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to build matrix: %w", err)
	}

	if err := usecase.WriteMatrixFile(cfg.OutputFile, matrix); err != nil {
		return err
	}
	logger.WithField("path", cfg.OutputFile).Info("Matrix written")
	return nil
}

func init() {
	rootCmd.AddCommand(matrixCmd)
	config.RegisterFlags(matrixCmd.Flags())
}
