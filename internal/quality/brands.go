package quality

import (
	"fmt"
	"sort"
	"strings"

	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/labels"
)

// BrandLanguageCounts is the three-way query-language split for one brand.
// Unlike the ratio detector, this split treats any query mixing CJK and
// Latin letters as Mixed.
type BrandLanguageCounts struct {
	English int `json:"English"`
	Mixed   int `json:"Mixed"`
	Chinese int `json:"Chinese"`
}

// Total returns the number of queries about the brand.
func (c BrandLanguageCounts) Total() int {
	return c.English + c.Mixed + c.Chinese
}

// ChineseShare is the share of queries that are Chinese or Mixed.
func (c BrandLanguageCounts) ChineseShare() float64 {
	return pct(c.Chinese+c.Mixed, c.Total())
}

// BrandDiagnostics summarizes the Chinese-brand and language-confound check
// that decides whether an English-only analysis is feasible.
type BrandDiagnostics struct {
	TotalBrands   int                            `json:"total_brands"`
	ChineseBrands []string                       `json:"chinese_brands"`
	BrandRecords  map[string]int                 `json:"chinese_brand_records"`
	PerBrand      map[string]BrandLanguageCounts `json:"brand_language_stats"`
	EnglishOnly   int                            `json:"english_only_records"`
	TotalRecords  int                            `json:"total_records"`
	PerLLMEnglish map[string]int                 `json:"llm_english_counts"`
	PerLLMTotal   map[string]int                 `json:"-"`
	MinPerLLM     int                            `json:"min_per_llm"`
}

// DiagnoseBrands scans the records for CJK-named brands and per-brand query
// language, and counts the English-only sample available per LLM.
func DiagnoseBrands(records []dataset.Record, det labels.PresenceDetector) *BrandDiagnostics {
	d := &BrandDiagnostics{
		BrandRecords:  make(map[string]int),
		PerBrand:      make(map[string]BrandLanguageCounts),
		PerLLMEnglish: make(map[string]int),
		PerLLMTotal:   make(map[string]int),
		TotalRecords:  len(records),
	}

	brands := make(map[string]bool)
	for i := range records {
		r := &records[i]
		brand := r.Brand
		if !brands[brand] {
			brands[brand] = true
			if det.ContainsCJK(brand) {
				d.ChineseBrands = append(d.ChineseBrands, brand)
			}
		}
		if det.ContainsCJK(brand) {
			d.BrandRecords[brand]++
		}

		query := r.QueryText()
		c := d.PerBrand[brand]
		hasCJK := det.ContainsCJK(query)
		hasLatin := strings.ContainsFunc(query, isASCIILetter)
		switch {
		case hasCJK && !hasLatin:
			c.Chinese++
		case hasCJK:
			c.Mixed++
		default:
			c.English++
		}
		d.PerBrand[brand] = c

		llm := r.ModelName()
		d.PerLLMTotal[llm]++
		if det.IsEnglish(query) {
			d.EnglishOnly++
			d.PerLLMEnglish[llm]++
		}
	}
	d.TotalBrands = len(brands)
	sort.Strings(d.ChineseBrands)

	d.MinPerLLM = -1
	for llm := range d.PerLLMTotal {
		n := d.PerLLMEnglish[llm]
		if d.MinPerLLM < 0 || n < d.MinPerLLM {
			d.MinPerLLM = n
		}
	}
	if d.MinPerLLM < 0 {
		d.MinPerLLM = 0
	}
	return d
}

// Render formats the diagnostics with the feasibility verdict for an
// English-only analysis (per-LLM sample thresholds 200 and 100).
func (d *BrandDiagnostics) Render() string {
	var b strings.Builder
	b.WriteString(heavyRule + "\nCHINESE BRAND DIAGNOSTICS\n" + heavyRule + "\n\n")
	fmt.Fprintf(&b, "Brands: %d total, %d with CJK names\n", d.TotalBrands, len(d.ChineseBrands))
	for _, brand := range d.ChineseBrands {
		fmt.Fprintf(&b, "  - %s: %d records\n", brand, d.BrandRecords[brand])
	}

	b.WriteString("\n" + rule + "\nQuery language by brand (top 20 by Chinese share)\n" + rule + "\n")
	for _, brand := range d.topBrandsByChineseShare(20) {
		c := d.PerBrand[brand]
		fmt.Fprintf(&b, "  %-24s en=%-5d mixed=%-5d zh=%-5d (%.1f%% Chinese)\n",
			brand, c.English, c.Mixed, c.Chinese, c.ChineseShare())
	}

	b.WriteString("\n" + rule + "\nEnglish-only subset\n" + rule + "\n")
	fmt.Fprintf(&b, "English-only records: %d / %d (%.1f%%)\n",
		d.EnglishOnly, d.TotalRecords, pct(d.EnglishOnly, d.TotalRecords))
	for _, llm := range d.sortedLLMs() {
		fmt.Fprintf(&b, "  %s: %d (%.1f%%)\n",
			llm, d.PerLLMEnglish[llm], pct(d.PerLLMEnglish[llm], d.PerLLMTotal[llm]))
	}

	b.WriteString("\n" + rule + "\nFeasibility\n" + rule + "\n")
	fmt.Fprintf(&b, "Smallest per-LLM English sample: %d\n\n", d.MinPerLLM)
	switch {
	case d.MinPerLLM >= 200:
		b.WriteString("✓ English-only analysis is feasible: every LLM has >200 English\nqueries, so language confounding can be excluded.\n")
	case d.MinPerLLM >= 100:
		b.WriteString("⚠ English-only analysis is possible but underpowered (>100 per LLM).\nConsider merging query types or restricting brands.\n")
	default:
		b.WriteString("✗ English-only analysis is not feasible with this sample. Consider\nstudying the language×LLM interaction instead.\n")
	}
	b.WriteString("\n" + heavyRule + "\n")
	return b.String()
}

func (d *BrandDiagnostics) topBrandsByChineseShare(n int) []string {
	brands := make([]string, 0, len(d.PerBrand))
	for brand := range d.PerBrand {
		brands = append(brands, brand)
	}
	sort.Slice(brands, func(i, j int) bool {
		a, b := d.PerBrand[brands[i]], d.PerBrand[brands[j]]
		ka, kb := a.Chinese+a.Mixed, b.Chinese+b.Mixed
		if ka != kb {
			return ka > kb
		}
		return brands[i] < brands[j]
	})
	if len(brands) > n {
		brands = brands[:n]
	}
	return brands
}

// sortedLLMs ranges over PerLLMTotal so an LLM with zero English queries
// still shows up in the listing; it is exactly the LLM dragging MinPerLLM
// down.
func (d *BrandDiagnostics) sortedLLMs() []string {
	llms := make([]string, 0, len(d.PerLLMTotal))
	for llm := range d.PerLLMTotal {
		llms = append(llms, llm)
	}
	sort.Slice(llms, func(i, j int) bool {
		if d.PerLLMEnglish[llms[i]] != d.PerLLMEnglish[llms[j]] {
			return d.PerLLMEnglish[llms[i]] > d.PerLLMEnglish[llms[j]]
		}
		return llms[i] < llms[j]
	})
	return llms
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
