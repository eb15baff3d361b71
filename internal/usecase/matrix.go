package usecase

import (
	"fmt"

	"github.com/naka-gawa/team-matrix/internal/domain"
)

// orderedSet is a set of strings that remembers insertion order.
type orderedSet struct {
	items []string
	index map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[string]struct{})}
}

func (s *orderedSet) add(item string) {
	if _, ok := s.index[item]; ok {
		return
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
}

// BuildMatrix pivots contributions into a login × group matrix.
//
// Columns start with groups, in order, followed by any other group found in contributions.
// Rows are logins in order of first appearance. Contributions must hold at most one
// record per (login, group); a second one is a bug in the aggregation and panics.
func BuildMatrix(groups []string, contributions []domain.Contribution) *domain.Matrix {
	columns := newOrderedSet()
	for _, g := range groups {
		columns.add(g)
	}
	rows := newOrderedSet()
	scores := make(map[string]map[string]float64)

	for _, c := range contributions {
		columns.add(c.Group)
		rows.add(c.Login)

		byGroup, ok := scores[c.Login]
		if !ok {
			byGroup = make(map[string]float64)
			scores[c.Login] = byGroup
		}
		if _, dup := byGroup[c.Group]; dup {
			panic(fmt.Sprintf("usecase: duplicate contribution for login %q in group %q", c.Login, c.Group))
		}
		byGroup[c.Group] = c.Score
	}

	return &domain.Matrix{
		Groups: columns.items,
		Logins: rows.items,
		Scores: scores,
	}
}
