package session

import (
	"math"
	"time"
)

// Result is what the results display needs: the server-returned score plus
// the context the submitting session carried.
type Result struct {
	Score     int
	Total     int
	QuizTitle string
	TimeSpent time.Duration
	StartedAt time.Time
}

// Percentage is round(score/total*100). A zero total yields 0, never a
// division by zero.
func (r Result) Percentage() int {
	if r.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(r.Score) / float64(r.Total) * 100))
}
