package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecayScore(t *testing.T) {
	assert.Equal(t, 1.0, DecayScore(0))
	assert.Equal(t, 0.25, DecayScore(365.25))
	assert.Equal(t, 0.0625, DecayScore(730.5))
	assert.InDelta(t, 0.5, DecayScore(182.625), 1e-12)
	assert.Greater(t, DecayScore(-10), 1.0, "future commits are not clamped")

	t.Run("monotonically non-increasing and positive", func(t *testing.T) {
		prev := DecayScore(0)
		for age := 1; age <= 20000; age++ {
			score := DecayScore(float64(age))
			assert.LessOrEqual(t, score, prev, "age %d", age)
			assert.GreaterOrEqual(t, score, 0.0, "age %d", age)
			prev = score
		}
	})
}

func TestAgeInDays(t *testing.T) {
	now := time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)
	jst := time.FixedZone("JST", 9*60*60)
	pst := time.FixedZone("PST", -8*60*60)

	testCases := []struct {
		name      string
		committed time.Time
		expected  int
	}{
		{name: "same instant", committed: now, expected: 0},
		{name: "earlier the same day", committed: time.Date(2024, 3, 10, 0, 0, 1, 0, time.UTC), expected: 0},
		{name: "late yesterday is one day", committed: time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC), expected: 1},
		{name: "leap day is counted", committed: time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC), expected: 11},
		{name: "one year back", committed: time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC), expected: 366},
		{name: "commit date read in its own offset", committed: time.Date(2024, 3, 9, 20, 0, 0, 0, pst), expected: 1},
		{name: "offset ahead of now", committed: time.Date(2024, 3, 10, 9, 30, 0, 0, jst), expected: 0},
		{name: "future commit is negative", committed: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), expected: -2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AgeInDays(tc.committed, now))
		})
	}
}

func TestDecay(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, 1.0, Decay(now.Add(-time.Hour), now))
	assert.Equal(t, DecayScore(366), Decay(now.AddDate(-1, 0, 0), now))
}
