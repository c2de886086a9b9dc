package aggregate

import (
	"math"
	"testing"

	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/labels"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func record(model, brand, query, sentiment string, mentioned bool) dataset.Record {
	return dataset.Record{
		Model: model,
		Brand: brand,
		Query: query,
		Analysis: &dataset.Analysis{
			BrandMentioned: mentioned,
			Sentiment:      dataset.Sentiment{Label: sentiment},
		},
	}
}

func testAggregator() *Aggregator {
	return New(labels.DefaultRegionMap(), labels.DefaultIndustryMap(), nil)
}

func TestFoldByLLMAndRegion(t *testing.T) {
	records := []dataset.Record{
		record("GPT-4o Search Preview", "Notion", "What is Notion?", "positive", true),
		record("GPT-4o Search Preview", "Slack", "What is Slack?", "neutral", false),
		record("Qwen3 Max Preview", "Notion", "What is Notion?", "positive", true),
		record("Qwen3 Max Preview", "Slack", "What is Slack?", "negative", true),
	}
	g := testAggregator().Fold(records)

	intl := g.ByRegion[string(labels.RegionInternational)]
	if !almostEqual(intl.Rate, 50) {
		t.Errorf("international rate = %v, want 50", intl.Rate)
	}
	china := g.ByRegion[string(labels.RegionChinese)]
	if !almostEqual(china.Rate, 100) {
		t.Errorf("chinese rate = %v, want 100", china.Rate)
	}
	// scores: intl {1, 0} mean 0.5; china {1, -1} mean 0
	if !almostEqual(intl.Mean, 0.5) {
		t.Errorf("international mean = %v, want 0.5", intl.Mean)
	}
	if !almostEqual(china.Mean, 0) {
		t.Errorf("chinese mean = %v, want 0", china.Mean)
	}
	// population SD of {1, -1} is 1
	if !almostEqual(china.SD, 1) {
		t.Errorf("chinese sd = %v, want 1", china.SD)
	}
	if got := g.ByLLM["GPT-4o Search Preview"].Total; got != 2 {
		t.Errorf("per-LLM total = %d, want 2", got)
	}
}

func TestFoldUnknownModelExcludedFromRegions(t *testing.T) {
	records := []dataset.Record{
		record("Llama 3.1 405B", "Notion", "What is Notion?", "positive", true),
	}
	g := testAggregator().Fold(records)
	if _, ok := g.ByLLM["Llama 3.1 405B"]; !ok {
		t.Fatal("unknown model should still appear in ByLLM")
	}
	for region, s := range g.ByRegion {
		if s.Total != 0 {
			t.Errorf("region %s should be empty, got total %d", region, s.Total)
		}
	}
}

func TestFoldEmptyRegionsPresent(t *testing.T) {
	g := testAggregator().Fold(nil)
	for _, region := range []string{string(labels.RegionInternational), string(labels.RegionChinese)} {
		s, ok := g.ByRegion[region]
		if !ok {
			t.Fatalf("region %s missing from empty fold", region)
		}
		if s.Rate != 0 || s.Mean != 0 {
			t.Errorf("empty region %s should have zero derived fields", region)
		}
	}
}

func TestRecommendationsFilter(t *testing.T) {
	records := []dataset.Record{
		record("GPT-4o Search Preview", "Notion", "Should I use Notion for my team?", "positive", true),
		record("GPT-4o Search Preview", "Notion", "What is Notion?", "positive", true),
		record("Qwen3 Max Preview", "Slack", "Should I use Slack?", "neutral", false),
	}
	g := testAggregator().Recommendations(records)
	if got := g.ByLLM["GPT-4o Search Preview"].Total; got != 1 {
		t.Errorf("recommendation subset should keep 1 GPT record, got %d", got)
	}
	if got := g.ByLLM["Qwen3 Max Preview"].Total; got != 1 {
		t.Errorf("recommendation subset should keep 1 Qwen record, got %d", got)
	}
}

func TestIndustryBiasRatios(t *testing.T) {
	records := []dataset.Record{
		// SaaS: intl 50%, china 100% -> ratio 2
		record("GPT-4o Search Preview", "Notion", "q", "neutral", true),
		record("GPT-4o Search Preview", "Notion", "q", "neutral", false),
		record("Qwen3 Max Preview", "Notion", "q", "neutral", true),
		// Fintech: intl 0% -> ratio defined as 0
		record("GPT-4o Search Preview", "Stripe", "q", "neutral", false),
		record("Qwen3 Max Preview", "Stripe", "q", "neutral", true),
	}
	out := testAggregator().IndustryBiasRatios(records)

	saas := out["SaaS"]
	if !almostEqual(saas.BiasRatio, 2) {
		t.Errorf("SaaS bias ratio = %v, want 2", saas.BiasRatio)
	}
	fintech := out["Fintech"]
	if !almostEqual(fintech.BiasRatio, 0) {
		t.Errorf("Fintech bias ratio with zero international rate = %v, want 0", fintech.BiasRatio)
	}
	if !almostEqual(fintech.Chinese, 100) {
		t.Errorf("Fintech chinese rate = %v, want 100", fintech.Chinese)
	}
}

func TestIndustryBiasExplicitLabelWins(t *testing.T) {
	r := record("GPT-4o Search Preview", "Notion", "q", "neutral", true)
	r.Industry = "Productivity"
	out := testAggregator().IndustryBiasRatios([]dataset.Record{r})
	if _, ok := out["Productivity"]; !ok {
		t.Fatalf("explicit industry label should define the group, got %v", out)
	}
}

func TestSentimentByQueryType(t *testing.T) {
	records := []dataset.Record{
		record("GPT-4o Search Preview", "Notion", "What is Notion?", "positive", true),
		record("GPT-4o Search Preview", "Notion", "What is Slack?", "negative", true),
		record("GPT-4o Search Preview", "Notion", "Tell me about Notion", "neutral", true),
	}
	groups := testAggregator().SentimentByQueryType(records, labels.NewQueryClassifier())
	if got := groups["What is"]; len(got) != 2 {
		t.Errorf("'What is' group has %d scores, want 2", len(got))
	}
	if got := groups[labels.QueryTypeOther]; len(got) != 1 {
		t.Errorf("Other group has %d scores, want 1", len(got))
	}
}

func TestRegionScores(t *testing.T) {
	records := []dataset.Record{
		record("GPT-4o Search Preview", "Notion", "q", "positive", true),
		record("Qwen3 Max Preview", "Notion", "q", "negative", true),
		record("Llama 3.1 405B", "Notion", "q", "positive", true),
	}
	intl, china := testAggregator().RegionScores(records)
	if len(intl) != 1 || intl[0] != 1 {
		t.Errorf("intl scores = %v, want [1]", intl)
	}
	if len(china) != 1 || china[0] != -1 {
		t.Errorf("china scores = %v, want [-1]", china)
	}
}
