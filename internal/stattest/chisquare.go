package stattest

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrEmptyTable is returned when a contingency table has a zero row or
// column total, which makes the expected counts undefined.
var ErrEmptyTable = errors.New("contingency table has an empty row or column")

// ChiSquareContingency runs the Pearson chi-square test of independence over
// an r×c table of observed counts. With one degree of freedom (2×2 tables)
// the Yates continuity correction is applied: each observed count is shifted
// toward its expected value by min(0.5, |O−E|), so a proportional table still
// scores exactly zero. Larger tables use the plain statistic.
func ChiSquareContingency(observed [][]float64) (chi2, p float64, dof int, err error) {
	rows := len(observed)
	if rows < 2 {
		return 0, 0, 0, fmt.Errorf("contingency table needs at least 2 rows, got %d", rows)
	}
	cols := len(observed[0])
	if cols < 2 {
		return 0, 0, 0, fmt.Errorf("contingency table needs at least 2 columns, got %d", cols)
	}

	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	var grand float64
	for i, row := range observed {
		if len(row) != cols {
			return 0, 0, 0, fmt.Errorf("ragged contingency table at row %d", i)
		}
		for j, v := range row {
			if v < 0 {
				return 0, 0, 0, fmt.Errorf("negative count at [%d][%d]", i, j)
			}
			rowTotals[i] += v
			colTotals[j] += v
			grand += v
		}
	}
	for _, t := range rowTotals {
		if t == 0 {
			return 0, 0, 0, ErrEmptyTable
		}
	}
	for _, t := range colTotals {
		if t == 0 {
			return 0, 0, 0, ErrEmptyTable
		}
	}

	dof = (rows - 1) * (cols - 1)
	for i := range observed {
		for j := range observed[i] {
			expected := rowTotals[i] * colTotals[j] / grand
			diff := math.Abs(observed[i][j] - expected)
			if dof == 1 {
				diff -= math.Min(0.5, diff)
			}
			chi2 += diff * diff / expected
		}
	}
	p = distuv.ChiSquared{K: float64(dof)}.Survival(chi2)
	return chi2, p, dof, nil
}

// MentionChiSquareResult reports test 1: the 2×2 mention-by-region test.
type MentionChiSquareResult struct {
	Test         string  `json:"test"`
	Chi2         float64 `json:"chi2"`
	PValue       float64 `json:"p_value"`
	DF           int     `json:"degrees_of_freedom"`
	Phi          float64 `json:"effect_size_phi"`
	PhiBand      Band    `json:"effect_size_interpretation"`
	GroupARate   float64 `json:"international_mention_rate"`
	GroupBRate   float64 `json:"chinese_mention_rate"`
	Difference   float64 `json:"difference"`
	Significant  bool    `json:"significant"`
	GroupATotals [2]int  `json:"-"` // mentioned, total
	GroupBTotals [2]int  `json:"-"`
}

// MentionChiSquare builds the 2×2 contingency table
// [[mentionedA, mentionedB], [notA, notB]] and tests for independence at the
// given significance level (non-positive alpha means DefaultAlpha).
// Effect size is the phi coefficient sqrt(chi2/n).
func MentionChiSquare(mentionedA, totalA, mentionedB, totalB int, alpha float64) (MentionChiSquareResult, error) {
	observed := [][]float64{
		{float64(mentionedA), float64(mentionedB)},
		{float64(totalA - mentionedA), float64(totalB - mentionedB)},
	}
	chi2, p, dof, err := ChiSquareContingency(observed)
	if err != nil {
		return MentionChiSquareResult{}, err
	}
	n := float64(totalA + totalB)
	phi := math.Sqrt(chi2 / n)

	rateA := rate(mentionedA, totalA)
	rateB := rate(mentionedB, totalB)
	return MentionChiSquareResult{
		Test:         "Chi-square test of independence",
		Chi2:         chi2,
		PValue:       p,
		DF:           dof,
		Phi:          phi,
		PhiBand:      PhiBand(phi),
		GroupARate:   rateA,
		GroupBRate:   rateB,
		Difference:   rateB - rateA,
		Significant:  p < alphaOrDefault(alpha),
		GroupATotals: [2]int{mentionedA, totalA},
		GroupBTotals: [2]int{mentionedB, totalB},
	}, nil
}

// GroupCounts holds mention counts for one group of an N×2 test.
type GroupCounts struct {
	Mention int     `json:"mention"`
	Total   int     `json:"total"`
	Rate    float64 `json:"rate"`
}

// RecommendationChiSquareResult reports test 3: the N×2 per-LLM test over
// recommendation queries.
type RecommendationChiSquareResult struct {
	Test        string                 `json:"test"`
	Chi2        float64                `json:"chi2"`
	PValue      float64                `json:"p_value"`
	DF          int                    `json:"degrees_of_freedom"`
	Groups      map[string]GroupCounts `json:"llm_details"`
	Significant bool                   `json:"significant"`
}

// RecommendationChiSquare runs the same contingency procedure over an
// observed/not-observed matrix with one column per group.
func RecommendationChiSquare(groups map[string]GroupCounts, alpha float64) (RecommendationChiSquareResult, error) {
	if len(groups) < 2 {
		return RecommendationChiSquareResult{}, fmt.Errorf("need at least 2 groups, got %d", len(groups))
	}
	mentions := make([]float64, 0, len(groups))
	notMentions := make([]float64, 0, len(groups))
	for name, g := range groups {
		mentions = append(mentions, float64(g.Mention))
		notMentions = append(notMentions, float64(g.Total-g.Mention))
		g.Rate = rate(g.Mention, g.Total)
		groups[name] = g
	}
	chi2, p, dof, err := ChiSquareContingency([][]float64{mentions, notMentions})
	if err != nil {
		return RecommendationChiSquareResult{}, err
	}
	return RecommendationChiSquareResult{
		Test:        "Chi-square test for recommendation queries",
		Chi2:        chi2,
		PValue:      p,
		DF:          dof,
		Groups:      groups,
		Significant: p < alphaOrDefault(alpha),
	}, nil
}

func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
