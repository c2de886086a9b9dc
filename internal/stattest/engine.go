// Package stattest implements the five hypothesis tests of the cultural
// bias study. Every test is a pure function of aggregated or raw data; the
// Engine only wires record sequences into their inputs.
package stattest

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/geostat-labs/biascope/internal/aggregate"
	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/labels"
)

// Suite bundles the results of all five tests, keyed the way the JSON
// report names them.
type Suite struct {
	MentionChiSquare        MentionChiSquareResult        `json:"test1_chi_square_mention"`
	SentimentTTest          TTestResult                   `json:"test2_t_test_sentiment"`
	RecommendationChiSquare RecommendationChiSquareResult `json:"test3_chi_square_recommendation"`
	SentimentANOVA          ANOVAResult                   `json:"test4_anova_sentiment"`
	LogisticRegression      LogisticResult                `json:"test5_logistic_regression"`
}

// Engine runs the test suite over a record sequence. It reads aggregates and
// raw records only; nothing here mutates shared state, so the tests can run
// in any order.
type Engine struct {
	regions    labels.RegionMap
	classifier *labels.QueryClassifier
	agg        *aggregate.Aggregator
	alpha      float64
	log        *zap.Logger
}

// NewEngine returns an Engine using the given lookup tables and significance
// level. A non-positive alpha means DefaultAlpha; a nil logger disables
// logging.
func NewEngine(regions labels.RegionMap, industries labels.IndustryMap, alpha float64, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		regions:    regions,
		classifier: labels.NewQueryClassifier(),
		agg:        aggregate.New(regions, industries, log),
		alpha:      alphaOrDefault(alpha),
		log:        log,
	}
}

// RunAll executes the five tests sequentially and returns the suite.
func (e *Engine) RunAll(records []dataset.Record) (*Suite, error) {
	e.log.Info("running statistical tests", zap.Int("records", len(records)))

	suite := &Suite{}
	var err error
	if suite.MentionChiSquare, err = e.MentionTest(records); err != nil {
		return nil, fmt.Errorf("mention chi-square: %w", err)
	}
	if suite.SentimentTTest, err = e.SentimentTest(records); err != nil {
		return nil, fmt.Errorf("sentiment t-test: %w", err)
	}
	if suite.RecommendationChiSquare, err = e.RecommendationTest(records); err != nil {
		return nil, fmt.Errorf("recommendation chi-square: %w", err)
	}
	if suite.SentimentANOVA, err = e.QueryTypeANOVA(records); err != nil {
		return nil, fmt.Errorf("query-type ANOVA: %w", err)
	}
	if suite.LogisticRegression, err = e.LogisticTest(records); err != nil {
		return nil, fmt.Errorf("logistic regression: %w", err)
	}

	e.log.Info("statistical tests complete",
		zap.Float64("chi2", suite.MentionChiSquare.Chi2),
		zap.Float64("t", suite.SentimentTTest.T),
		zap.Float64("f", suite.SentimentANOVA.F),
		zap.Bool("logit_converged", suite.LogisticRegression.Converged))
	return suite, nil
}

// MentionTest builds region mention counts and runs the 2×2 chi-square with
// International as group A and Chinese as group B.
func (e *Engine) MentionTest(records []dataset.Record) (MentionChiSquareResult, error) {
	g := e.agg.Fold(records)
	intl := g.ByRegion[string(labels.RegionInternational)]
	china := g.ByRegion[string(labels.RegionChinese)]
	return MentionChiSquare(intl.Mentioned, intl.Total, china.Mentioned, china.Total, e.alpha)
}

// SentimentTest runs the region t-test with Chinese scores as group A, so a
// positive t and d mean Chinese models score higher.
func (e *Engine) SentimentTest(records []dataset.Record) (TTestResult, error) {
	intl, china := e.agg.RegionScores(records)
	return TwoSampleTTest(china, intl, e.alpha)
}

// RecommendationTest restricts to recommendation queries and runs the N×2
// per-LLM chi-square.
func (e *Engine) RecommendationTest(records []dataset.Record) (RecommendationChiSquareResult, error) {
	g := e.agg.Recommendations(records)
	groups := make(map[string]GroupCounts, len(g.ByLLM))
	for llm, s := range g.ByLLM {
		groups[llm] = GroupCounts{Mention: s.Mentioned, Total: s.Total, Rate: s.Rate}
	}
	return RecommendationChiSquare(groups, e.alpha)
}

// QueryTypeANOVA groups sentiment scores by query type and runs one-way
// ANOVA across them.
func (e *Engine) QueryTypeANOVA(records []dataset.Record) (ANOVAResult, error) {
	groups := e.agg.SentimentByQueryType(records, e.classifier)
	return OneWayANOVA(groups, e.alpha)
}

// LogisticTest fits mention on is-Chinese-LLM and is-recommendation-query.
func (e *Engine) LogisticTest(records []dataset.Record) (LogisticResult, error) {
	n := len(records)
	x1 := make([]float64, n)
	x2 := make([]float64, n)
	y := make([]float64, n)
	for i := range records {
		r := &records[i]
		if e.regions.Region(r.ModelName()) == labels.RegionChinese {
			x1[i] = 1
		}
		if strings.Contains(r.QueryText(), aggregate.RecommendationMarker) {
			x2[i] = 1
		}
		if r.Mentioned() {
			y[i] = 1
		}
	}
	return FitLogistic(x1, x2, y)
}
