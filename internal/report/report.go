// Package report assembles and renders the analysis artifacts: the JSON
// report structures, the console text report, and the LaTeX/CSV tables.
// Everything it exposes is plain nested structs of primitive values so any
// renderer can consume them.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/geostat-labs/biascope/internal/aggregate"
	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/stattest"
)

// Meta identifies one pipeline run.
type Meta struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	DataFile    string    `json:"data_file"`
	Records     int       `json:"records"`
}

// RecommendationSection couples the recommendation-query aggregates with
// their chi-square test.
type RecommendationSection struct {
	ByLLM     map[string]*aggregate.GroupSummary     `json:"by_llm"`
	ByRegion  map[string]*aggregate.GroupSummary     `json:"by_region"`
	ChiSquare stattest.RecommendationChiSquareResult `json:"chi_square"`
}

// Analysis is the full cultural-bias report, mirroring the structure the
// table and figure generators consume.
type Analysis struct {
	Meta            Meta                              `json:"meta"`
	MentionRates    *aggregate.Grouped                `json:"mention_rates"`
	Sentiment       *aggregate.Grouped                `json:"sentiment"`
	Recommendations *RecommendationSection            `json:"recommendation_queries"`
	IndustryBias    map[string]aggregate.IndustryBias `json:"industry_differences"`
}

// BuildAnalysis runs the aggregation passes and the recommendation
// chi-square over the records, judging significance at the given level
// (non-positive alpha means stattest.DefaultAlpha).
func BuildAnalysis(dataFile string, records []dataset.Record, agg *aggregate.Aggregator, alpha float64) (*Analysis, error) {
	mention := agg.Fold(records)
	rec := agg.Recommendations(records)

	groups := make(map[string]stattest.GroupCounts, len(rec.ByLLM))
	for llm, s := range rec.ByLLM {
		groups[llm] = stattest.GroupCounts{Mention: s.Mentioned, Total: s.Total, Rate: s.Rate}
	}
	chi, err := stattest.RecommendationChiSquare(groups, alpha)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Meta: Meta{
			RunID:       uuid.NewString(),
			GeneratedAt: time.Now().UTC(),
			DataFile:    dataFile,
			Records:     len(records),
		},
		MentionRates: mention,
		Sentiment:    mention,
		Recommendations: &RecommendationSection{
			ByLLM:     rec.ByLLM,
			ByRegion:  rec.ByRegion,
			ChiSquare: chi,
		},
		IndustryBias: agg.IndustryBiasRatios(records),
	}, nil
}

// LoadAnalysis reads a saved analysis report. Table and figure generation
// consume saved reports so they can run without the raw dataset.
func LoadAnalysis(path string) (*Analysis, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var a Analysis
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &a, nil
}
