package sweep

import "math"

// GridPoint is one evaluated candidate from a grid search.
type GridPoint struct {
	Value float64
	Score float64
}

// Search evaluates the objective at every candidate in parallel and
// returns all points plus the index of the smallest score. Candidates
// with NaN scores lose against everything.
func Search(candidates []float64, objective func(float64) float64) ([]GridPoint, int) {
	points := make([]GridPoint, len(candidates))

	ParallelFor(len(candidates), 1, func(start, end int) {
		for i := start; i < end; i++ {
			points[i] = GridPoint{Value: candidates[i], Score: objective(candidates[i])}
		}
	})

	best := -1
	bestScore := math.Inf(1)
	for i, p := range points {
		if !math.IsNaN(p.Score) && p.Score < bestScore {
			bestScore = p.Score
			best = i
		}
	}
	return points, best
}
