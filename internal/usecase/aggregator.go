// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/team-matrix/internal/domain"
	"github.com/naka-gawa/team-matrix/internal/gateway"
	"github.com/sirupsen/logrus"
)

// Aggregator scores the logins of one group at a time.
// Repositories are fetched one after the other.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *logrus.Entry
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *logrus.Entry) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Fetch lists the commits of one repository. A failure is captured in the result, not returned.
func (a *Aggregator) Fetch(ctx context.Context, org, repo string) domain.CommitResult {
	commits, err := a.fetcher.ListCommits(ctx, org, repo)
	if err != nil {
		return domain.CommitResult{Repository: repo, Err: err}
	}
	return domain.CommitResult{Repository: repo, Commits: commits}
}

// AggregateGroup scores every repository of group and returns the group's contributions,
// highest score first. A repository that cannot be fetched is reported and skipped.
// The only error returned is the context's.
func (a *Aggregator) AggregateGroup(ctx context.Context, org string, group domain.Group, now time.Time) ([]domain.Contribution, error) {
	log := a.logger.WithField("group", group.Name)
	log.Info("Scoring group")

	t := newTally()
	scored := 0
	for _, repo := range group.Repositories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := a.Fetch(ctx, org, repo)
		if result.Failed() {
			log.WithField("repo", repo).WithError(result.Err).Warn("Failed to get commits; skipping repository")
			continue
		}
		log.WithField("repo", repo).WithField("commits", len(result.Commits)).Info("Scored repository")
		t.addAll(result.Commits, now)
		scored++
	}

	contributions := t.contributions(group.Name)
	a.logSummary(log, scored, contributions)
	return contributions, nil
}

func (a *Aggregator) logSummary(log *logrus.Entry, repos int, contributions []domain.Contribution) {
	fields := logrus.Fields{"repos": repos, "contributors": len(contributions)}
	scores := make(stats.Float64Data, 0, len(contributions))
	for _, c := range contributions {
		scores = append(scores, c.Score)
	}
	if total, err := scores.Sum(); err == nil {
		fields["total"] = total
	}
	if median, err := scores.Median(); err == nil {
		fields["median"] = median
	}
	log.WithFields(fields).Debug("Group summary")
}

// tally accumulates decayed scores per login, remembering first-encounter order.
type tally struct {
	logins []string
	scores map[string]float64
}

func newTally() *tally {
	return &tally{scores: make(map[string]float64)}
}

// add folds one commit into the tally. Commits without a login are ignored.
func (t *tally) add(c domain.Commit, now time.Time) {
	if c.Login == "" {
		return
	}
	if _, ok := t.scores[c.Login]; !ok {
		t.logins = append(t.logins, c.Login)
	}
	t.scores[c.Login] += Decay(c.Committed, now)
}

func (t *tally) addAll(commits []domain.Commit, now time.Time) {
	for _, c := range commits {
		t.add(c, now)
	}
}

// contributions returns the tally sorted by descending score; ties keep encounter order.
func (t *tally) contributions(group string) []domain.Contribution {
	out := make([]domain.Contribution, 0, len(t.logins))
	for _, login := range t.logins {
		out = append(out, domain.Contribution{Group: group, Login: login, Score: t.scores[login]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
