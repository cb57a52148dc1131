package progress

import "math"

// LectureCompletionPercent is round-half-up(conducted / target * 100), or 0 when the
// normalized target is 0. It is not clamped: 6 conducted out of 4 gives 150.
func LectureCompletionPercent(target, conducted Field) int {
	t := Normalize(target)
	if t == 0 {
		return 0
	}
	return roundHalfUp(Normalize(conducted) / t * 100)
}

func roundHalfUp(x float64) int {
	r := math.Floor(x + 0.5)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt:
		return math.MaxInt
	case r <= math.MinInt:
		return math.MinInt
	}
	return int(r)
}
