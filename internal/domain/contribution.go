// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Group is a named pool of repositories scored together.
// Repositories keeps the order in which they were listed in the grouping file.
type Group struct {
	Name         string
	Repositories []string
}

// Repository is an organization repository as listed by the gateway.
type Repository struct {
	Name    string
	Private bool
}

// Commit is a single commit reduced to what the scoring needs.
// An empty Login means the commit is not linked to a GitHub account.
type Commit struct {
	Login     string
	Committed time.Time
}

// CommitResult is the outcome of fetching the commits of one repository.
// Exactly one of Commits and Err is meaningful.
type CommitResult struct {
	Repository string
	Commits    []Commit
	Err        error
}

// Failed reports whether the fetch failed.
func (r CommitResult) Failed() bool {
	return r.Err != nil
}

// Contribution is the decayed score of one login within one group.
type Contribution struct {
	Group string  `json:"group"`
	Login string  `json:"login"`
	Score float64 `json:"score"`
}
