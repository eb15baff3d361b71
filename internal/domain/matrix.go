package domain

import (
	"bufio"
	"io"
	"strconv"
)

// MatrixCorner is the label written in the top-left cell of the matrix.
const MatrixCorner = "Login/Group"

// Matrix is the login × group pivot of all contributions.
// It is built once and never mutated afterwards.
type Matrix struct {
	Groups []string
	Logins []string
	// Scores is indexed by login, then by group. Missing entries mean no contribution.
	Scores map[string]map[string]float64
}

// Score returns the score of login within group, and whether one exists.
func (m *Matrix) Score(login, group string) (float64, bool) {
	score, ok := m.Scores[login][group]
	return score, ok
}

// Cell returns the rendered cell for login within group. Absent scores render as "0".
func (m *Matrix) Cell(login, group string) string {
	score, ok := m.Score(login, group)
	if !ok {
		return "0"
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// WriteTo writes the matrix as tab-separated values: a header row followed by one row per login.
func (m *Matrix) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	write := func(s string) {
		c, _ := bw.WriteString(s)
		n += int64(c)
	}

	write(MatrixCorner)
	for _, group := range m.Groups {
		write("\t" + group)
	}
	write("\n")

	for _, login := range m.Logins {
		write(login)
		for _, group := range m.Groups {
			write("\t" + m.Cell(login, group))
		}
		write("\n")
	}

	if err := bw.Flush(); err != nil {
		return n, err
	}
	return n, nil
}
