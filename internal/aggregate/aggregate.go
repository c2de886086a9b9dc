// Package aggregate folds labeled records into per-group summaries. Each
// method is one pass over the records; groupings by LLM, region, and
// industry are independent, not a single nested group-by.
package aggregate

import (
	"strings"

	"go.uber.org/zap"

	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/labels"
)

// RecommendationMarker identifies recommendation-type queries.
const RecommendationMarker = "Should I use"

// Grouped holds the two parallel groupings every analysis reports on.
type Grouped struct {
	ByLLM    map[string]*GroupSummary `json:"by_llm"`
	ByRegion map[string]*GroupSummary `json:"by_region"`
}

// IndustryBias is the per-industry region comparison. BiasRatio is
// chinese rate over international rate, defined as 0 when the international
// rate is 0 (documented policy, not a true ratio in that case).
type IndustryBias struct {
	International float64 `json:"International"`
	Chinese       float64 `json:"Chinese"`
	BiasRatio     float64 `json:"bias_ratio"`
}

// Aggregator folds record sequences into group summaries using injected
// lookup tables. Source records are never mutated.
type Aggregator struct {
	regions    labels.RegionMap
	industries labels.IndustryMap
	log        *zap.Logger
}

// New returns an Aggregator. A nil logger disables logging.
func New(regions labels.RegionMap, industries labels.IndustryMap, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{regions: regions, industries: industries, log: log}
}

// Fold aggregates mention and sentiment per LLM and per region in one pass.
// Unknown-region models count toward ByLLM only. Both regions are always
// present in ByRegion, even when empty after filtering.
func (a *Aggregator) Fold(records []dataset.Record) *Grouped {
	g := &Grouped{
		ByLLM: make(map[string]*GroupSummary),
		ByRegion: map[string]*GroupSummary{
			string(labels.RegionInternational): {},
			string(labels.RegionChinese):       {},
		},
	}
	for i := range records {
		r := &records[i]
		mentioned := r.Mentioned()
		score := r.SentimentScore()

		llm := r.ModelName()
		s, ok := g.ByLLM[llm]
		if !ok {
			s = &GroupSummary{}
			g.ByLLM[llm] = s
		}
		s.Add(mentioned, score)

		if region := a.regions.Region(llm); region != labels.RegionUnknown {
			g.ByRegion[string(region)].Add(mentioned, score)
		}
	}
	for _, s := range g.ByLLM {
		s.Finalize()
	}
	for _, s := range g.ByRegion {
		s.Finalize()
	}
	a.log.Debug("folded records",
		zap.Int("records", len(records)),
		zap.Int("llms", len(g.ByLLM)))
	return g
}

// Recommendations filters to recommendation-type queries and aggregates the
// filtered subset.
func (a *Aggregator) Recommendations(records []dataset.Record) *Grouped {
	var subset []dataset.Record
	for i := range records {
		if strings.Contains(records[i].QueryText(), RecommendationMarker) {
			subset = append(subset, records[i])
		}
	}
	a.log.Debug("recommendation queries selected",
		zap.Int("selected", len(subset)),
		zap.Int("records", len(records)))
	return a.Fold(subset)
}

// IndustryBiasRatios computes per-industry mention rates by region and their
// bias ratio. Unknown-region records are excluded.
func (a *Aggregator) IndustryBiasRatios(records []dataset.Record) map[string]IndustryBias {
	type counts struct {
		intl, china *GroupSummary
	}
	byIndustry := make(map[string]counts)
	for i := range records {
		r := &records[i]
		region := a.regions.Region(r.ModelName())
		if region == labels.RegionUnknown {
			continue
		}
		industry := a.industries.Industry(r.Brand, r.Industry)
		c, ok := byIndustry[industry]
		if !ok {
			c = counts{intl: &GroupSummary{}, china: &GroupSummary{}}
			byIndustry[industry] = c
		}
		if region == labels.RegionInternational {
			c.intl.Add(r.Mentioned(), r.SentimentScore())
		} else {
			c.china.Add(r.Mentioned(), r.SentimentScore())
		}
	}

	out := make(map[string]IndustryBias, len(byIndustry))
	for industry, c := range byIndustry {
		c.intl.Finalize()
		c.china.Finalize()
		bias := IndustryBias{International: c.intl.Rate, Chinese: c.china.Rate}
		if c.intl.Rate > 0 {
			bias.BiasRatio = c.china.Rate / c.intl.Rate
		}
		out[industry] = bias
	}
	return out
}

// SentimentByQueryType groups sentiment scores by the classifier's query
// type label. Used as ANOVA input.
func (a *Aggregator) SentimentByQueryType(records []dataset.Record, classifier *labels.QueryClassifier) map[string][]float64 {
	groups := make(map[string][]float64)
	for i := range records {
		r := &records[i]
		qtype := classifier.Classify(r.QueryText())
		groups[qtype] = append(groups[qtype], float64(r.SentimentScore()))
	}
	return groups
}

// RegionScores splits sentiment scores into the two region samples for the
// t-test. Unknown-region records are excluded.
func (a *Aggregator) RegionScores(records []dataset.Record) (intl, china []float64) {
	for i := range records {
		r := &records[i]
		score := float64(r.SentimentScore())
		switch a.regions.Region(r.ModelName()) {
		case labels.RegionInternational:
			intl = append(intl, score)
		case labels.RegionChinese:
			china = append(china, score)
		}
	}
	return intl, china
}
