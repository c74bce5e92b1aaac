package service

import "trivia-api/internal/data"

// AllCategories selects questions from every category when playing a quiz.
const AllCategories int64 = 0

// PickQuizQuestion drops every candidate whose id appears in previous and
// picks one of the rest using intn, which must return a value in [0, n).
// It reports false when no candidate is left.
func PickQuizQuestion(candidates []data.Question, previous []int64, intn func(n int) int) (*data.Question, bool) {
	asked := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		asked[id] = struct{}{}
	}

	remaining := make([]data.Question, 0, len(candidates))
	for _, q := range candidates {
		if _, ok := asked[q.ID]; !ok {
			remaining = append(remaining, q)
		}
	}
	if len(remaining) == 0 {
		return nil, false
	}

	picked := remaining[intn(len(remaining))]
	return &picked, true
}
