package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/geostat-labs/biascope/internal/aggregate"
	"github.com/geostat-labs/biascope/internal/labels"
	"github.com/geostat-labs/biascope/internal/stattest"
)

const rule = "----------------------------------------------------------------------"
const heavyRule = "======================================================================"

// RenderAnalysis formats the analysis report for the console, section by
// section in the layout of the paper's working notes.
func RenderAnalysis(a *Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nCULTURAL BIAS ANALYSIS REPORT\n%s\n", heavyRule, heavyRule)

	fmt.Fprintf(&b, "\n[1] BRAND MENTION RATE ANALYSIS\n%s\n", rule)
	b.WriteString("\nBy LLM:\n")
	for _, llm := range sortedByRate(a.MentionRates.ByLLM) {
		s := a.MentionRates.ByLLM[llm]
		fmt.Fprintf(&b, "  %s: %.1f%% (%d/%d)\n", llm, s.Rate, s.Mentioned, s.Total)
	}
	b.WriteString("\nBy Region:\n")
	for _, region := range regionOrder(a.MentionRates.ByRegion) {
		s := a.MentionRates.ByRegion[region]
		fmt.Fprintf(&b, "  %s: %.1f%% (%d/%d)\n", region, s.Rate, s.Mentioned, s.Total)
	}

	fmt.Fprintf(&b, "\n[2] SENTIMENT ANALYSIS\n%s\n", rule)
	b.WriteString("\nBy LLM:\n")
	for _, llm := range sortedByMean(a.Sentiment.ByLLM) {
		s := a.Sentiment.ByLLM[llm]
		fmt.Fprintf(&b, "  %s: %.3f (SD=%.2f, Positive=%.1f%%)\n", llm, s.Mean, s.SD, s.PositiveRate)
	}
	b.WriteString("\nBy Region:\n")
	for _, region := range regionOrder(a.Sentiment.ByRegion) {
		s := a.Sentiment.ByRegion[region]
		fmt.Fprintf(&b, "  %s: %.3f (Positive=%.1f%%)\n", region, s.Mean, s.PositiveRate)
	}

	fmt.Fprintf(&b, "\n[3] RECOMMENDATION QUERY ANALYSIS\n%s\n", rule)
	fmt.Fprintf(&b, "\nBrand loyalty in %q queries:\n", aggregate.RecommendationMarker)
	for _, llm := range sortedByRate(a.Recommendations.ByLLM) {
		s := a.Recommendations.ByLLM[llm]
		fmt.Fprintf(&b, "  %s: %.1f%% (%d/%d)\n", llm, s.Rate, s.Mentioned, s.Total)
	}
	chi := a.Recommendations.ChiSquare
	fmt.Fprintf(&b, "\nChi-square test: χ²=%.1f, p=%.4f\n", chi.Chi2, chi.PValue)

	fmt.Fprintf(&b, "\n[4] INDUSTRY-SPECIFIC CULTURAL BIAS\n%s\n", rule)
	b.WriteString("\nBias ratio by industry:\n")
	for _, industry := range sortedByBias(a.IndustryBias) {
		s := a.IndustryBias[industry]
		fmt.Fprintf(&b, "  %s: %.2f× (Intl=%.1f%%, China=%.1f%%)\n",
			industry, s.BiasRatio, s.International, s.Chinese)
	}

	fmt.Fprintf(&b, "\n%s\nANALYSIS COMPLETE\n%s\n", heavyRule, heavyRule)
	return b.String()
}

// RenderSuite formats the five hypothesis-test results.
func RenderSuite(s *stattest.Suite) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nSTATISTICAL TESTS\n%s\n", heavyRule, heavyRule)

	t1 := s.MentionChiSquare
	fmt.Fprintf(&b, "\n[TEST 1] Chi-Square Test: Brand Mention Rate by Region\n%s\n", rule)
	fmt.Fprintf(&b, "International: %.1f%% (%d/%d)\n", t1.GroupARate, t1.GroupATotals[0], t1.GroupATotals[1])
	fmt.Fprintf(&b, "Chinese: %.1f%% (%d/%d)\n", t1.GroupBRate, t1.GroupBTotals[0], t1.GroupBTotals[1])
	fmt.Fprintf(&b, "Difference: %.1f percentage points\n", t1.Difference)
	fmt.Fprintf(&b, "\nχ²(%d) = %.1f, p %s\n", t1.DF, t1.Chi2, stattest.FormatP(t1.PValue))
	fmt.Fprintf(&b, "Effect size (φ): %.3f (%s)\n", t1.Phi, t1.PhiBand)

	t2 := s.SentimentTTest
	fmt.Fprintf(&b, "\n[TEST 2] Independent t-Test: Sentiment Score by Region\n%s\n", rule)
	fmt.Fprintf(&b, "Chinese: M=%.3f, SD=%.2f, n=%d\n", t2.MeanA, t2.SDA, t2.NA)
	fmt.Fprintf(&b, "International: M=%.3f, SD=%.2f, n=%d\n", t2.MeanB, t2.SDB, t2.NB)
	fmt.Fprintf(&b, "Mean difference: %.3f [%.3f, %.3f]\n", t2.MeanDiff, t2.CI95Lower, t2.CI95Upper)
	fmt.Fprintf(&b, "\nt(%d) = %.2f, p %s\n", t2.DF, t2.T, stattest.FormatP(t2.PValue))
	fmt.Fprintf(&b, "Cohen's d: %.2f (%s effect)\n", t2.CohensD, t2.Band)

	t3 := s.RecommendationChiSquare
	fmt.Fprintf(&b, "\n[TEST 3] Chi-Square Test: Brand Loyalty in Recommendation Queries\n%s\n", rule)
	b.WriteString("\nBrand mention rates by LLM:\n")
	for _, llm := range sortedGroupNames(t3.Groups) {
		g := t3.Groups[llm]
		fmt.Fprintf(&b, "  %s: %.1f%% (%d/%d)\n", llm, g.Rate, g.Mention, g.Total)
	}
	fmt.Fprintf(&b, "\nχ²(%d) = %.1f, p %s\n", t3.DF, t3.Chi2, stattest.FormatP(t3.PValue))

	t4 := s.SentimentANOVA
	fmt.Fprintf(&b, "\n[TEST 4] One-Way ANOVA: Sentiment Across Query Types\n%s\n", rule)
	fmt.Fprintf(&b, "F(%d, %d) = %.2f, p %s\n", t4.DFBetween, t4.DFWithin, t4.F, stattest.FormatP(t4.PValue))
	fmt.Fprintf(&b, "Effect size (η²): %.3f\n", t4.EtaSquared)
	b.WriteString("\nSentiment by query type:\n")
	for _, qtype := range sortedStatsByMean(t4.Groups) {
		g := t4.Groups[qtype]
		fmt.Fprintf(&b, "  %s: M=%.3f, SD=%.2f, n=%d\n", qtype, g.Mean, g.SD, g.N)
	}

	t5 := s.LogisticRegression
	fmt.Fprintf(&b, "\n[TEST 5] Logistic Regression: Predicting Brand Mention\n%s\n", rule)
	fmt.Fprintf(&b, "Model: logit(P(mention)) = %.3f + %.3f×Chinese_LLM + %.3f×Rec_Query\n",
		t5.Intercept, t5.BetaChineseLLM, t5.BetaRecQuery)
	fmt.Fprintf(&b, "\nCoefficients:\n")
	fmt.Fprintf(&b, "  Intercept: %.3f\n", t5.Intercept)
	fmt.Fprintf(&b, "  Chinese LLM: β=%.3f, OR=%.3f\n", t5.BetaChineseLLM, t5.ORChineseLLM)
	fmt.Fprintf(&b, "  Recommendation Query: β=%.3f, OR=%.3f\n", t5.BetaRecQuery, t5.ORRecQuery)
	if !t5.Converged {
		b.WriteString("\n⚠ Optimizer did not converge; coefficients are the last iterate.\n")
	}

	fmt.Fprintf(&b, "\n%s\nALL STATISTICAL TESTS COMPLETE\n%s\n", heavyRule, heavyRule)
	return b.String()
}

func sortedByRate(m map[string]*aggregate.GroupSummary) []string {
	return sortedKeys(m, func(a, b *aggregate.GroupSummary) bool { return a.Rate > b.Rate })
}

func sortedByMean(m map[string]*aggregate.GroupSummary) []string {
	return sortedKeys(m, func(a, b *aggregate.GroupSummary) bool { return a.Mean > b.Mean })
}

func sortedKeys(m map[string]*aggregate.GroupSummary, less func(a, b *aggregate.GroupSummary) bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := m[keys[i]], m[keys[j]]
		if less(a, b) != less(b, a) {
			return less(a, b)
		}
		return keys[i] < keys[j]
	})
	return keys
}

func regionOrder(m map[string]*aggregate.GroupSummary) []string {
	order := []string{string(labels.RegionInternational), string(labels.RegionChinese)}
	out := order[:0:0]
	for _, r := range order {
		if _, ok := m[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

func sortedByBias(m map[string]aggregate.IndustryBias) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := m[keys[i]], m[keys[j]]
		if a.BiasRatio != b.BiasRatio {
			return a.BiasRatio > b.BiasRatio
		}
		return keys[i] < keys[j]
	})
	return keys
}

func sortedGroupNames(m map[string]stattest.GroupCounts) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := m[keys[i]], m[keys[j]]
		if a.Rate != b.Rate {
			return a.Rate > b.Rate
		}
		return keys[i] < keys[j]
	})
	return keys
}

func sortedStatsByMean(m map[string]stattest.GroupStats) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := m[keys[i]], m[keys[j]]
		if a.Mean != b.Mean {
			return a.Mean > b.Mean
		}
		return keys[i] < keys[j]
	})
	return keys
}
