// Package grouping reads the file that assigns repositories to groups.
//
// Each non-blank line holds "<repository> <group>". Lines starting with "//" are comments.
package grouping

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/naka-gawa/team-matrix/internal/domain"
)

const commentPrefix = "//"

// ErrMalformedLine is returned when a line does not hold exactly two tokens.
var ErrMalformedLine = errors.New("malformed grouping line")

// Load opens path and parses it with Parse.
func Load(path string) ([]domain.Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grouping file: %w", err)
	}
	defer f.Close()

	groups, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return groups, nil
}

// Parse reads repository/group pairs and returns the groups in first-seen order.
// A repository listed twice under the same group is kept once.
func Parse(r io.Reader) ([]domain.Group, error) {
	var groups []domain.Group
	index := make(map[string]int)
	seen := make(map[string]map[string]struct{})

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) != 2 {
			return nil, fmt.Errorf("%w at line %d: %q (want \"<repository> <group>\")", ErrMalformedLine, lineNo, line)
		}
		repo, group := tokens[0], tokens[1]

		i, ok := index[group]
		if !ok {
			i = len(groups)
			index[group] = i
			groups = append(groups, domain.Group{Name: group})
			seen[group] = make(map[string]struct{})
		}
		if _, dup := seen[group][repo]; dup {
			continue
		}
		seen[group][repo] = struct{}{}
		groups[i].Repositories = append(groups[i].Repositories, repo)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read grouping file: %w", err)
	}
	return groups, nil
}

// Names returns the group names in order.
func Names(groups []domain.Group) []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names
}
