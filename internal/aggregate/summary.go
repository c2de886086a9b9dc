package aggregate

import "gonum.org/v1/gonum/stat"

// GroupSummary accumulates counts and sentiment scores for one group key
// (LLM name, region, industry, or query type). Fold records in with Add,
// then call Finalize once; the derived fields are never updated
// incrementally and are meaningless before Finalize runs.
type GroupSummary struct {
	Total           int   `json:"total"`
	Mentioned       int   `json:"mentioned"`
	PositiveCount   int   `json:"positive_count"`
	SentimentScores []int `json:"sentiment_scores,omitempty"`

	// Derived by Finalize.
	Rate         float64 `json:"rate"`
	Mean         float64 `json:"mean"`
	SD           float64 `json:"sd"`
	PositiveRate float64 `json:"positive_rate"`
}

// Add folds one record into the summary.
func (s *GroupSummary) Add(mentioned bool, score int) {
	s.Total++
	if mentioned {
		s.Mentioned++
	}
	if score > 0 {
		s.PositiveCount++
	}
	s.SentimentScores = append(s.SentimentScores, score)
}

// Finalize derives rate, mean, population SD, and positive rate. Groups can
// legitimately be empty (a region with no records in a filtered subset), so
// a zero total yields zero rates rather than an error.
func (s *GroupSummary) Finalize() {
	if s.Total == 0 {
		return
	}
	s.Rate = float64(s.Mentioned) / float64(s.Total) * 100
	s.PositiveRate = float64(s.PositiveCount) / float64(s.Total) * 100
	scores := s.Scores()
	s.Mean = stat.Mean(scores, nil)
	s.SD = stat.PopStdDev(scores, nil)
}

// Scores returns the sentiment scores as float64 for the test engine.
func (s *GroupSummary) Scores() []float64 {
	out := make([]float64, len(s.SentimentScores))
	for i, v := range s.SentimentScores {
		out[i] = float64(v)
	}
	return out
}
