package stattest

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// GroupStats summarizes one ANOVA group.
type GroupStats struct {
	Mean float64 `json:"mean"`
	SD   float64 `json:"sd"`
	N    int     `json:"n"`
}

// ANOVAResult reports test 4: one-way ANOVA across query-type groups.
type ANOVAResult struct {
	Test        string                `json:"test"`
	F           float64               `json:"f_statistic"`
	PValue      float64               `json:"p_value"`
	DFBetween   int                   `json:"df_between"`
	DFWithin    int                   `json:"df_within"`
	EtaSquared  float64               `json:"eta_squared"`
	Groups      map[string]GroupStats `json:"query_type_stats"`
	Significant bool                  `json:"significant"`
}

// OneWayANOVA computes the F statistic over the given groups and its
// p-value, judging significance at the given level (non-positive alpha means
// DefaultAlpha).
//
// Eta-squared deliberately uses the mean of per-group means as the grand
// mean, not the pooled mean of all observations. The two formulations give
// different numbers for unbalanced groups and downstream tables were built
// against this one, so it must not be "fixed" to the pooled form.
func OneWayANOVA(groups map[string][]float64, alpha float64) (ANOVAResult, error) {
	k := len(groups)
	if k < 2 {
		return ANOVAResult{}, fmt.Errorf("ANOVA needs at least 2 groups, got %d", k)
	}

	var total int
	means := make(map[string]float64, k)
	for name, g := range groups {
		if len(g) == 0 {
			return ANOVAResult{}, fmt.Errorf("group %q is empty", name)
		}
		total += len(g)
		means[name] = stat.Mean(g, nil)
	}
	if total <= k {
		return ANOVAResult{}, fmt.Errorf("ANOVA needs more observations (%d) than groups (%d)", total, k)
	}

	// F statistic against the pooled grand mean, the standard formulation.
	var pooledSum float64
	for _, g := range groups {
		for _, x := range g {
			pooledSum += x
		}
	}
	pooledMean := pooledSum / float64(total)

	var ssBetween, ssWithin float64
	for name, g := range groups {
		m := means[name]
		dm := m - pooledMean
		ssBetween += float64(len(g)) * dm * dm
		for _, x := range g {
			dx := x - m
			ssWithin += dx * dx
		}
	}
	dfBetween := k - 1
	dfWithin := total - k
	f := (ssBetween / float64(dfBetween)) / (ssWithin / float64(dfWithin))
	p := distuv.F{D1: float64(dfBetween), D2: float64(dfWithin)}.Survival(f)

	// Eta-squared against the mean of group means (see doc comment).
	var meanOfMeans float64
	for _, m := range means {
		meanOfMeans += m
	}
	meanOfMeans /= float64(k)

	var etaBetween, etaTotal float64
	for name, g := range groups {
		dm := means[name] - meanOfMeans
		etaBetween += float64(len(g)) * dm * dm
		for _, x := range g {
			dx := x - meanOfMeans
			etaTotal += dx * dx
		}
	}
	var eta float64
	if etaTotal > 0 {
		eta = etaBetween / etaTotal
	}

	stats := make(map[string]GroupStats, k)
	for name, g := range groups {
		stats[name] = GroupStats{
			Mean: means[name],
			SD:   stat.PopStdDev(g, nil),
			N:    len(g),
		}
	}

	return ANOVAResult{
		Test:        "One-way ANOVA",
		F:           f,
		PValue:      p,
		DFBetween:   dfBetween,
		DFWithin:    dfWithin,
		EtaSquared:  eta,
		Groups:      stats,
		Significant: p < alphaOrDefault(alpha),
	}, nil
}
