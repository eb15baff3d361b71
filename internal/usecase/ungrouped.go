package usecase

import (
	"sort"

	"github.com/naka-gawa/team-matrix/internal/domain"
)

// UngroupedRepositories returns the names of public repositories that belong to no group,
// sorted alphabetically. Private repositories are never reported.
func UngroupedRepositories(repos []domain.Repository, groups []domain.Group) []string {
	grouped := make(map[string]struct{})
	for _, g := range groups {
		for _, repo := range g.Repositories {
			grouped[repo] = struct{}{}
		}
	}

	var names []string
	for _, repo := range repos {
		if repo.Private {
			continue
		}
		if _, ok := grouped[repo.Name]; ok {
			continue
		}
		names = append(names, repo.Name)
	}
	sort.Strings(names)
	return names
}
