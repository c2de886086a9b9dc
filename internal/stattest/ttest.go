package stattest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult reports test 2: the independent two-sample t-test. Group A is
// the first sample passed in; means, SDs, and the mean difference follow
// that orientation (A minus B).
type TTestResult struct {
	Test        string  `json:"test"`
	T           float64 `json:"t_statistic"`
	PValue      float64 `json:"p_value"`
	DF          int     `json:"degrees_of_freedom"`
	CohensD     float64 `json:"cohens_d"`
	Band        Band    `json:"effect_size_interpretation"`
	MeanA       float64 `json:"mean_a"`
	SDA         float64 `json:"sd_a"`
	NA          int     `json:"n_a"`
	MeanB       float64 `json:"mean_b"`
	SDB         float64 `json:"sd_b"`
	NB          int     `json:"n_b"`
	MeanDiff    float64 `json:"mean_difference"`
	CI95Lower   float64 `json:"ci_95_lower"`
	CI95Upper   float64 `json:"ci_95_upper"`
	Significant bool    `json:"significant"`
}

// TwoSampleTTest runs Student's pooled-variance t-test of a against b at the
// given significance level (non-positive alpha means DefaultAlpha).
// Cohen's d uses the pooled standard deviation; the 95% CI for the mean
// difference uses the normal approximation diff ± 1.96·SE.
func TwoSampleTTest(a, b []float64, alpha float64) (TTestResult, error) {
	na, nb := len(a), len(b)
	if na < 2 || nb < 2 {
		return TTestResult{}, fmt.Errorf("each sample needs at least 2 observations, got %d and %d", na, nb)
	}

	meanA, meanB := stat.Mean(a, nil), stat.Mean(b, nil)
	varA, varB := stat.Variance(a, nil), stat.Variance(b, nil) // sample variance
	fa, fb := float64(na), float64(nb)

	pooledVar := ((fa-1)*varA + (fb-1)*varB) / (fa + fb - 2)
	pooledSD := math.Sqrt(pooledVar)
	if pooledSD == 0 {
		return TTestResult{}, fmt.Errorf("both samples are constant; t-test undefined")
	}

	diff := meanA - meanB
	t := diff / (pooledSD * math.Sqrt(1/fa+1/fb))
	df := na + nb - 2
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	p := 2 * dist.Survival(math.Abs(t))

	d := diff / pooledSD
	se := math.Sqrt(varA/fa + varB/fb)

	return TTestResult{
		Test:        "Independent samples t-test",
		T:           t,
		PValue:      p,
		DF:          df,
		CohensD:     d,
		Band:        CohenBand(d),
		MeanA:       meanA,
		SDA:         stat.PopStdDev(a, nil),
		NA:          na,
		MeanB:       meanB,
		SDB:         stat.PopStdDev(b, nil),
		NB:          nb,
		MeanDiff:    diff,
		CI95Lower:   diff - 1.96*se,
		CI95Upper:   diff + 1.96*se,
		Significant: p < alphaOrDefault(alpha),
	}, nil
}
