package usecase

import (
	"math"
	"time"
)

// daysPerYear is the mean length of a Julian year.
const daysPerYear = 365.25

// AgeInDays returns the number of whole calendar days from the commit's date to now's date.
// Each instant is read in its own location, so a commit keeps the date its author saw.
// The result is negative for commits dated after now.
func AgeInDays(committed, now time.Time) int {
	cy, cm, cd := committed.Date()
	ny, nm, nd := now.Date()
	from := time.Date(cy, cm, cd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// DecayScore weights a commit of the given age: 1 today, 1/4 after a year, 1/16 after two.
// Negative ages score above 1 and are not clamped.
func DecayScore(ageDays float64) float64 {
	return 1 / math.Pow(2, 2*ageDays/daysPerYear)
}

// Decay scores a commit made at committed relative to now.
func Decay(committed, now time.Time) float64 {
	return DecayScore(float64(AgeInDays(committed, now)))
}
