// Package quality holds the data-quality diagnostics that gate the main
// analysis: query-language validation, Chinese-brand checks, and the
// English-only subset filter.
package quality

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/labels"
)

// LLMLanguageStats is the language distribution of one LLM's queries.
type LLMLanguageStats struct {
	Total      int                     `json:"total"`
	Languages  map[labels.Language]int `json:"languages"`
	EnglishPct float64                 `json:"english_pct"`
	ChinesePct float64                 `json:"chinese_pct"`
	MixedPct   float64                 `json:"mixed_pct"`
}

// SampleQuery is one sampled query with its detected language.
type SampleQuery struct {
	Query    string          `json:"query"`
	Language labels.Language `json:"language"`
}

// LanguageValidation is the query-language validation result. It uses the
// fine-grained ratio detector; the binary presence detector would collapse
// Mixed into non-English and is the wrong tool here.
type LanguageValidation struct {
	TotalRecords int                         `json:"total_records"`
	Sampled      int                         `json:"sampled"`
	PerLLM       map[string]LLMLanguageStats `json:"llm_language_stats"`
	Samples      map[string][]SampleQuery    `json:"sample_queries"`
}

// ValidateQueryLanguages samples up to sampleSize records and tallies the
// query language per LLM. The rng is injected so reports are reproducible.
func ValidateQueryLanguages(records []dataset.Record, sampleSize int, rng *rand.Rand, det labels.RatioDetector) *LanguageValidation {
	sample := records
	if sampleSize > 0 && len(records) > sampleSize {
		idx := rng.Perm(len(records))[:sampleSize]
		sample = make([]dataset.Record, sampleSize)
		for i, j := range idx {
			sample[i] = records[j]
		}
	}

	queries := make(map[string][]string)
	for i := range sample {
		r := &sample[i]
		queries[r.ModelName()] = append(queries[r.ModelName()], r.QueryText())
	}

	v := &LanguageValidation{
		TotalRecords: len(records),
		Sampled:      len(sample),
		PerLLM:       make(map[string]LLMLanguageStats, len(queries)),
		Samples:      make(map[string][]SampleQuery, len(queries)),
	}
	for llm, qs := range queries {
		counts := make(map[labels.Language]int)
		for _, q := range qs {
			counts[det.Detect(q)]++
		}
		total := len(qs)
		v.PerLLM[llm] = LLMLanguageStats{
			Total:      total,
			Languages:  counts,
			EnglishPct: pct(counts[labels.LangEnglish], total),
			ChinesePct: pct(counts[labels.LangChinese], total),
			MixedPct:   pct(counts[labels.LangMixed], total),
		}
		n := 5
		if n > len(qs) {
			n = len(qs)
		}
		for _, j := range rng.Perm(len(qs))[:n] {
			v.Samples[llm] = append(v.Samples[llm], SampleQuery{Query: qs[j], Language: det.Detect(qs[j])})
		}
	}
	return v
}

// AllEnglish reports whether every LLM queried in English (>95% per LLM).
func (v *LanguageValidation) AllEnglish() bool {
	return v.allAbove(func(s LLMLanguageStats) float64 { return s.EnglishPct })
}

// AllChinese reports whether every LLM queried in Chinese (>95% per LLM).
func (v *LanguageValidation) AllChinese() bool {
	return v.allAbove(func(s LLMLanguageStats) float64 { return s.ChinesePct })
}

func (v *LanguageValidation) allAbove(field func(LLMLanguageStats) float64) bool {
	if len(v.PerLLM) == 0 {
		return false
	}
	for _, s := range v.PerLLM {
		if field(s) <= 95 {
			return false
		}
	}
	return true
}

// Render formats the validation report.
func (v *LanguageValidation) Render() string {
	var b strings.Builder
	b.WriteString(heavyRule + "\nQUERY LANGUAGE VALIDATION REPORT\n" + heavyRule + "\n\n")
	fmt.Fprintf(&b, "Records: %d (sampled %d)\n\n", v.TotalRecords, v.Sampled)

	b.WriteString(rule + "\n1. Query language by LLM\n" + rule + "\n")
	for _, llm := range sortedByEnglishPct(v.PerLLM) {
		s := v.PerLLM[llm]
		fmt.Fprintf(&b, "\n%s:\n  Queries: %d\n  Languages:\n", llm, s.Total)
		for _, lang := range languageOrder {
			if count, ok := s.Languages[lang]; ok {
				fmt.Fprintf(&b, "    %s: %d (%.1f%%)\n", lang, count, pct(count, s.Total))
			}
		}
	}

	b.WriteString("\n" + rule + "\n2. Verdict\n" + rule + "\n\n")
	switch {
	case v.AllEnglish():
		b.WriteString("✓ All LLMs were queried in English.\n")
		b.WriteString("Regional differences can be attributed to the models' cultural\nencoding rather than query-language confounding.\n")
	case v.AllChinese():
		b.WriteString("⚠ All LLMs were queried in Chinese.\n")
		b.WriteString("Model comparisons remain valid but describe a Chinese-query setting.\n")
	default:
		b.WriteString("✗ LLMs were queried in mixed languages: query language is a\nconfounding variable.\n")
		b.WriteString("Options: analyze English and Chinese subsets separately, re-collect\nwith a single query language, or study the language×LLM interaction.\n")
	}

	b.WriteString("\n" + rule + "\n3. Sample queries\n" + rule + "\n")
	llms := make([]string, 0, len(v.Samples))
	for llm := range v.Samples {
		llms = append(llms, llm)
	}
	sort.Strings(llms)
	for _, llm := range llms {
		fmt.Fprintf(&b, "\n%s:\n", llm)
		for i, s := range v.Samples[llm] {
			fmt.Fprintf(&b, "  [%d] [%s] %s\n", i+1, s.Language, s.Query)
		}
	}
	b.WriteString("\n" + heavyRule + "\n")
	return b.String()
}

var languageOrder = []labels.Language{labels.LangEnglish, labels.LangMixed, labels.LangChinese, labels.LangEmpty}

const (
	rule      = "----------------------------------------------------------------------"
	heavyRule = "======================================================================"
)

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func sortedByEnglishPct(m map[string]LLMLanguageStats) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := m[keys[i]], m[keys[j]]
		if a.EnglishPct != b.EnglishPct {
			return a.EnglishPct > b.EnglishPct
		}
		return keys[i] < keys[j]
	})
	return keys
}
