package stattest

import (
	"fmt"
	"testing"

	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/labels"
)

// syntheticRecords builds a dataset where Chinese models mention more often
// and score higher, enough to exercise every test in the suite.
func syntheticRecords() []dataset.Record {
	queries := []string{
		"What is %s?",
		"Should I use %s for my team?",
		"Compare %s and a rival",
		"How much does %s cost?",
	}
	sentiments := map[bool][]string{
		true:  {"positive", "positive", "neutral", "negative"},
		false: {"neutral", "negative", "positive", "neutral"},
	}
	var records []dataset.Record
	add := func(model string, chinese bool) {
		for i := 0; i < 40; i++ {
			mentioned := i%4 != 0 // 75%
			if !chinese {
				mentioned = i%2 == 0 // 50%
			}
			records = append(records, dataset.Record{
				Model: model,
				Brand: "Notion",
				Query: fmt.Sprintf(queries[i%len(queries)], "Notion"),
				Analysis: &dataset.Analysis{
					BrandMentioned: mentioned,
					Sentiment:      dataset.Sentiment{Label: sentiments[chinese][i%4]},
				},
			})
		}
	}
	add("GPT-4o Search Preview", false)
	add("Claude Sonnet 4.5", false)
	add("Qwen3 Max Preview", true)
	add("DeepSeek V3.2 Exp", true)
	return records
}

func TestEngineRunAll(t *testing.T) {
	engine := NewEngine(labels.DefaultRegionMap(), labels.DefaultIndustryMap(), 0, nil)
	suite, err := engine.RunAll(syntheticRecords())
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	if suite.MentionChiSquare.Chi2 <= 0 {
		t.Errorf("mention chi2 = %v, want > 0", suite.MentionChiSquare.Chi2)
	}
	// Chinese models mention more: difference (chinese - international) > 0.
	if suite.MentionChiSquare.Difference <= 0 {
		t.Errorf("difference = %v, want > 0", suite.MentionChiSquare.Difference)
	}

	// Group A of the t-test is the Chinese sample, which scores higher here.
	if suite.SentimentTTest.T <= 0 {
		t.Errorf("t = %v, want > 0 with Chinese scores higher", suite.SentimentTTest.T)
	}

	if suite.RecommendationChiSquare.DF != 3 {
		t.Errorf("recommendation dof = %d, want 3 for four LLMs", suite.RecommendationChiSquare.DF)
	}

	if len(suite.SentimentANOVA.Groups) < 2 {
		t.Errorf("ANOVA groups = %d, want several query types", len(suite.SentimentANOVA.Groups))
	}

	lr := suite.LogisticRegression
	if !lr.Converged {
		t.Error("logistic fit should converge on this dataset")
	}
	if lr.BetaChineseLLM <= 0 {
		t.Errorf("beta for Chinese LLM = %v, want > 0", lr.BetaChineseLLM)
	}
	if lr.NObservations != 160 {
		t.Errorf("n = %d, want 160", lr.NObservations)
	}
}

// The engine's alpha reaches every Significant verdict in the suite.
func TestEngineSignificanceLevel(t *testing.T) {
	records := syntheticRecords()

	def, err := NewEngine(labels.DefaultRegionMap(), labels.DefaultIndustryMap(), 0, nil).RunAll(records)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if !def.MentionChiSquare.Significant {
		t.Errorf("p = %v should clear the default 0.05", def.MentionChiSquare.PValue)
	}

	strict, err := NewEngine(labels.DefaultRegionMap(), labels.DefaultIndustryMap(), 1e-12, nil).RunAll(records)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if strict.MentionChiSquare.Significant {
		t.Errorf("p = %v should not clear alpha 1e-12", strict.MentionChiSquare.PValue)
	}
	if strict.MentionChiSquare.PValue != def.MentionChiSquare.PValue {
		t.Errorf("alpha must not change the p-value: %v vs %v",
			strict.MentionChiSquare.PValue, def.MentionChiSquare.PValue)
	}
}
