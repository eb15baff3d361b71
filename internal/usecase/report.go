package usecase

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/naka-gawa/team-matrix/internal/domain"
	"github.com/naka-gawa/team-matrix/internal/gateway"
	"github.com/naka-gawa/team-matrix/internal/grouping"
	"github.com/sirupsen/logrus"
)

// Options are the inputs of a single report run.
type Options struct {
	Organization string
	Groups       []domain.Group
	// Now is the reference instant commit ages are measured against.
	Now time.Time
}

// Reporter runs the whole report: ungrouped check, per-group scoring and the matrix pivot.
type Reporter struct {
	fetcher    gateway.Fetcher
	aggregator *Aggregator
	logger     *logrus.Entry
}

// NewReporter creates a new Reporter instance.
func NewReporter(fetcher gateway.Fetcher, logger *logrus.Entry) *Reporter {
	return &Reporter{
		fetcher:    fetcher,
		aggregator: NewAggregator(fetcher, logger),
		logger:     logger,
	}
}

// Run scores every group of opts and returns the resulting matrix.
// Only a failure to list the organization's repositories, or a cancelled context, aborts the run.
func (r *Reporter) Run(ctx context.Context, opts Options) (*domain.Matrix, error) {
	log := r.logger.WithField("org", opts.Organization)
	log.Info("Usecase: Starting contribution report...")

	repos, err := r.fetcher.ListRepositories(ctx, opts.Organization)
	if err != nil {
		return nil, err
	}
	for _, name := range UngroupedRepositories(repos, opts.Groups) {
		log.WithField("repo", name).Warn("Repo is not grouped!")
	}

	var contributions []domain.Contribution
	for _, group := range opts.Groups {
		groupContributions, err := r.aggregator.AggregateGroup(ctx, opts.Organization, group, opts.Now)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, groupContributions...)
	}

	matrix := BuildMatrix(grouping.Names(opts.Groups), contributions)
	log.WithFields(logrus.Fields{"logins": len(matrix.Logins), "groups": len(matrix.Groups)}).Info("Usecase: Report complete.")
	return matrix, nil
}

// WriteMatrixFile writes matrix to path, replacing any previous content.
func WriteMatrixFile(path string, matrix *domain.Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if _, err := matrix.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
