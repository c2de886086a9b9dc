package stattest

import (
	"errors"
	"math"
	"testing"
)

func TestChiSquareNoAssociation(t *testing.T) {
	chi2, p, dof, err := ChiSquareContingency([][]float64{{25, 25}, {25, 25}})
	if err != nil {
		t.Fatalf("ChiSquareContingency: %v", err)
	}
	if chi2 > 1e-12 {
		t.Errorf("chi2 = %v, want ~0 for a no-association table", chi2)
	}
	if p < 0.999 {
		t.Errorf("p = %v, want ~1", p)
	}
	if dof != 1 {
		t.Errorf("dof = %d, want 1", dof)
	}
}

func TestChiSquareKnownValue(t *testing.T) {
	// Expected counts are all 25; |O-E|=15 shrinks to 14.5 under the
	// continuity correction, so chi2 = 4 * 14.5^2 / 25 = 33.64.
	chi2, p, _, err := ChiSquareContingency([][]float64{{40, 10}, {10, 40}})
	if err != nil {
		t.Fatalf("ChiSquareContingency: %v", err)
	}
	if math.Abs(chi2-33.64) > 1e-9 {
		t.Errorf("chi2 = %v, want 33.64", chi2)
	}
	if p > 1e-6 {
		t.Errorf("p = %v, want near zero", p)
	}
}

func TestChiSquareContinuityCorrection(t *testing.T) {
	// Expected counts (25, 15, 25, 15); |O-E|=5 shrinks to 4.5, giving
	// chi2 = 2*(4.5^2/25) + 2*(4.5^2/15) = 4.32 rather than the plain 5.333.
	chi2, _, dof, err := ChiSquareContingency([][]float64{{30, 10}, {20, 20}})
	if err != nil {
		t.Fatalf("ChiSquareContingency: %v", err)
	}
	if dof != 1 {
		t.Fatalf("dof = %d, want 1", dof)
	}
	if math.Abs(chi2-4.32) > 1e-9 {
		t.Errorf("chi2 = %v, want corrected 4.32", chi2)
	}
}

func TestChiSquareNoCorrectionAboveOneDF(t *testing.T) {
	// 2x3 table, all expected counts 15: plain Pearson 4*(5^2/15) = 100/15.
	chi2, _, dof, err := ChiSquareContingency([][]float64{{10, 20, 15}, {20, 10, 15}})
	if err != nil {
		t.Fatalf("ChiSquareContingency: %v", err)
	}
	if dof != 2 {
		t.Fatalf("dof = %d, want 2", dof)
	}
	if math.Abs(chi2-100.0/15.0) > 1e-9 {
		t.Errorf("chi2 = %v, want uncorrected %v", chi2, 100.0/15.0)
	}
}

// The correction shifts observed toward expected by at most the difference
// itself, so a near-proportional table moves to zero instead of past it.
func TestChiSquareCorrectionNeverOvershoots(t *testing.T) {
	chi2, p, _, err := ChiSquareContingency([][]float64{{25.2, 24.8}, {24.8, 25.2}})
	if err != nil {
		t.Fatalf("ChiSquareContingency: %v", err)
	}
	if chi2 != 0 {
		t.Errorf("chi2 = %v, want exactly 0 for |O-E| < 0.5", chi2)
	}
	if p < 0.999 {
		t.Errorf("p = %v, want ~1", p)
	}
}

func TestChiSquareInputErrors(t *testing.T) {
	cases := []struct {
		name     string
		observed [][]float64
	}{
		{"one row", [][]float64{{1, 2}}},
		{"one column", [][]float64{{1}, {2}}},
		{"ragged", [][]float64{{1, 2}, {3}}},
		{"negative", [][]float64{{1, -2}, {3, 4}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, _, _, err := ChiSquareContingency(c.observed); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestChiSquareEmptyMarginal(t *testing.T) {
	_, _, _, err := ChiSquareContingency([][]float64{{5, 0}, {5, 0}})
	if !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("err = %v, want ErrEmptyTable", err)
	}
}

func TestMentionChiSquare(t *testing.T) {
	res, err := MentionChiSquare(40, 50, 10, 50, 0)
	if err != nil {
		t.Fatalf("MentionChiSquare: %v", err)
	}
	if math.Abs(res.Chi2-33.64) > 1e-9 {
		t.Errorf("chi2 = %v, want 33.64", res.Chi2)
	}
	if math.Abs(res.Phi-0.58) > 1e-9 {
		t.Errorf("phi = %v, want 0.58", res.Phi)
	}
	if res.PhiBand != BandLarge {
		t.Errorf("phi band = %q, want large", res.PhiBand)
	}
	if math.Abs(res.GroupARate-80) > 1e-9 || math.Abs(res.GroupBRate-20) > 1e-9 {
		t.Errorf("rates = %v / %v, want 80 / 20", res.GroupARate, res.GroupBRate)
	}
	if math.Abs(res.Difference-(-60)) > 1e-9 {
		t.Errorf("difference = %v, want -60", res.Difference)
	}
	if !res.Significant {
		t.Error("should be significant")
	}
}

func TestMentionChiSquareAllOrNothing(t *testing.T) {
	// Everyone mentions: the not-mentioned row is empty.
	if _, err := MentionChiSquare(50, 50, 50, 50, 0); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("err = %v, want ErrEmptyTable", err)
	}
}

// The configured significance level, not a fixed 0.05, decides Significant.
func TestMentionChiSquareAlpha(t *testing.T) {
	strict, err := MentionChiSquare(40, 50, 10, 50, 1e-12)
	if err != nil {
		t.Fatal(err)
	}
	if strict.Significant {
		t.Errorf("p = %v should not clear alpha 1e-12", strict.PValue)
	}
	loose, err := MentionChiSquare(40, 50, 10, 50, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if !loose.Significant {
		t.Errorf("p = %v should clear alpha 0.05", loose.PValue)
	}
}

func TestRecommendationChiSquare(t *testing.T) {
	groups := map[string]GroupCounts{
		"GPT-4o Search Preview": {Mention: 30, Total: 40},
		"Claude Sonnet 4.5":     {Mention: 28, Total: 40},
		"Qwen3 Max Preview":     {Mention: 39, Total: 40},
	}
	res, err := RecommendationChiSquare(groups, 0)
	if err != nil {
		t.Fatalf("RecommendationChiSquare: %v", err)
	}
	if res.DF != 2 {
		t.Errorf("dof = %d, want 2", res.DF)
	}
	if got := res.Groups["Qwen3 Max Preview"].Rate; math.Abs(got-97.5) > 1e-9 {
		t.Errorf("rate = %v, want 97.5", got)
	}
}

func TestRecommendationChiSquareNeedsTwoGroups(t *testing.T) {
	_, err := RecommendationChiSquare(map[string]GroupCounts{"only": {Mention: 1, Total: 2}}, 0)
	if err == nil {
		t.Fatal("expected error with a single group")
	}
}
