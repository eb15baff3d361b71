// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/naka-gawa/team-matrix/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	ListRepositories(ctx context.Context, org string) ([]domain.Repository, error)
	ListCommits(ctx context.Context, org, repo string) ([]domain.Commit, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *logrus.Entry
}

// orgRepositoriesQuery pages through every repository of an organization.
type orgRepositoriesQuery struct {
	Organization struct {
		Repositories struct {
			PageInfo struct {
				HasNextPage bool
				EndCursor   githubv4.String
			}
			Nodes []struct {
				Name      string
				IsPrivate bool
			}
		} `graphql:"repositories(first: 100, after: $cursor, orderBy: {field: NAME, direction: ASC})"`
	} `graphql:"organization(login: $org)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *logrus.Entry) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger.WithField("component", "gateway"),
	}, nil
}

// ListRepositories returns every repository of org, private ones included.
func (g *GitHubGateway) ListRepositories(ctx context.Context, org string) ([]domain.Repository, error) {
	g.logger.WithField("org", org).Debug("Fetching organization repositories using GraphQL API...")
	variables := map[string]interface{}{
		"org":    githubv4.String(org),
		"cursor": (*githubv4.String)(nil),
	}

	var repos []domain.Repository
	for {
		var q orgRepositoriesQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to list repositories of %s: %w", org, err)
		}
		for _, node := range q.Organization.Repositories.Nodes {
			repos = append(repos, domain.Repository{Name: node.Name, Private: node.IsPrivate})
		}
		if !q.Organization.Repositories.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Organization.Repositories.PageInfo.EndCursor)
		g.logger.Debug("  Fetching next page of repositories...")
	}
	g.logger.WithField("count", len(repos)).Debug("Completed fetching repositories.")
	return repos, nil
}

// ListCommits returns every commit reachable from the default branch of org/repo.
// Commits whose author is not linked to a GitHub account carry an empty Login.
func (g *GitHubGateway) ListCommits(ctx context.Context, org, repo string) ([]domain.Commit, error) {
	log := g.logger.WithField("repo", repo)
	log.Debug("Fetching commits using REST API...")
	opts := &github.CommitsListOptions{ListOptions: github.ListOptions{PerPage: 100}}

	var commits []domain.Commit
	for {
		page, resp, err := g.restClient.Repositories.ListCommits(ctx, org, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits of %s/%s: %w", org, repo, err)
		}
		for _, c := range page {
			commits = append(commits, domain.Commit{
				Login:     c.GetAuthor().GetLogin(),
				Committed: c.GetCommit().GetAuthor().GetDate().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		log.Debug("  Fetching next page of commits...")
	}
	log.WithField("count", len(commits)).Debug("Completed fetching commits.")
	return commits, nil
}
