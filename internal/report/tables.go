package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/geostat-labs/biascope/internal/labels"
)

// TableWriter renders the paper's five tables as LaTeX fragments with CSV
// twins holding the same tabular data.
type TableWriter struct {
	report  *Analysis
	regions labels.RegionMap
}

// NewTableWriter returns a writer over a saved analysis report.
func NewTableWriter(a *Analysis, regions labels.RegionMap) *TableWriter {
	return &TableWriter{report: a, regions: regions}
}

type table struct {
	name    string
	caption string
	note    string
	columns []string
	rows    [][]string
}

// WriteAll writes all tables into dir, creating it if needed.
func (w *TableWriter) WriteAll(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir tables dir: %w", err)
	}
	for _, t := range []table{
		w.datasetOverview(),
		w.mentionRateByLLM(),
		w.sentimentByLLM(),
		w.recommendationLoyalty(),
		w.industryBias(),
	} {
		texPath := filepath.Join(dir, t.name+".tex")
		if err := os.WriteFile(texPath, []byte(t.latex()), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", texPath, err)
		}
		if err := t.writeCSV(filepath.Join(dir, t.name+".csv")); err != nil {
			return err
		}
	}
	return nil
}

func (w *TableWriter) datasetOverview() table {
	mention := w.report.MentionRates.ByRegion
	sentiment := w.report.Sentiment.ByRegion
	intl := mention[string(labels.RegionInternational)]
	china := mention[string(labels.RegionChinese)]
	intlPos := sentiment[string(labels.RegionInternational)].PositiveCount
	chinaPos := sentiment[string(labels.RegionChinese)].PositiveCount

	return table{
		name:    "table1_dataset_overview",
		caption: "Dataset Overview",
		note:    "Summary of collected responses by LLM region.",
		columns: []string{"Category", "International LLMs", "Chinese LLMs", "Total"},
		rows: [][]string{
			{"Total Responses",
				fmt.Sprintf("%d", intl.Total),
				fmt.Sprintf("%d", china.Total),
				fmt.Sprintf("%d", intl.Total+china.Total)},
			{"Brands Mentioned",
				fmt.Sprintf("%d (%.1f%%)", intl.Mentioned, intl.Rate),
				fmt.Sprintf("%d (%.1f%%)", china.Mentioned, china.Rate),
				fmt.Sprintf("%d", intl.Mentioned+china.Mentioned)},
			{"Positive Sentiment",
				fmt.Sprintf("%d (%.1f%%)", intlPos, sentiment[string(labels.RegionInternational)].PositiveRate),
				fmt.Sprintf("%d (%.1f%%)", chinaPos, sentiment[string(labels.RegionChinese)].PositiveRate),
				fmt.Sprintf("%d", intlPos+chinaPos)},
		},
	}
}

func (w *TableWriter) mentionRateByLLM() table {
	var rows [][]string
	for _, llm := range sortedByRate(w.report.MentionRates.ByLLM) {
		s := w.report.MentionRates.ByLLM[llm]
		rows = append(rows, []string{
			llm,
			string(w.regions.Region(llm)),
			fmt.Sprintf("%.1f%%", s.Rate),
			fmt.Sprintf("%d/%d", s.Mentioned, s.Total),
		})
	}
	return table{
		name:    "table2_brand_mention_rate",
		caption: "Brand Mention Rate by LLM",
		note:    "Brand mention rates across six LLMs with regional classification.",
		columns: []string{"LLM", "Region", "Mention Rate", "Total"},
		rows:    rows,
	}
}

func (w *TableWriter) sentimentByLLM() table {
	var rows [][]string
	for _, llm := range sortedByMean(w.report.Sentiment.ByLLM) {
		s := w.report.Sentiment.ByLLM[llm]
		rows = append(rows, []string{
			llm,
			string(w.regions.Region(llm)),
			fmt.Sprintf("%.3f", s.Mean),
			fmt.Sprintf("%.2f", s.SD),
			fmt.Sprintf("%.1f%%", s.PositiveRate),
			fmt.Sprintf("%d", s.PositiveCount),
		})
	}
	return table{
		name:    "table3_mean_sentiment_score",
		caption: "Mean Sentiment Score by LLM",
		note:    "Sentiment scores range from -1 (negative) to +1 (positive).",
		columns: []string{"LLM", "Region", "Mean Sentiment", "SD", "Positive Rate", "Positive Count"},
		rows:    rows,
	}
}

func (w *TableWriter) recommendationLoyalty() table {
	var rows [][]string
	for _, llm := range sortedByRate(w.report.Recommendations.ByLLM) {
		s := w.report.Recommendations.ByLLM[llm]
		// Simplified ±5pp interval carried over from the paper's draft tables.
		lower := s.Rate - 5
		if lower < 0 {
			lower = 0
		}
		upper := s.Rate + 5
		if upper > 100 {
			upper = 100
		}
		rows = append(rows, []string{
			llm,
			fmt.Sprintf("%.1f%%", s.Rate),
			fmt.Sprintf("[%.1f%%, %.1f%%]", lower, upper),
		})
	}
	chi := w.report.Recommendations.ChiSquare
	return table{
		name:    "table4_brand_loyalty_recommendation",
		caption: "Brand Loyalty in Recommendation Queries",
		note: fmt.Sprintf(`Brand mention rates in "Should I use" recommendation queries. Chi-square test: $\chi^2=%.1f$, $p%s$.`,
			chi.Chi2, latexP(chi.PValue)),
		columns: []string{"LLM", "Brand Mention Rate", "95% CI"},
		rows:    rows,
	}
}

func (w *TableWriter) industryBias() table {
	var rows [][]string
	for _, industry := range sortedByBias(w.report.IndustryBias) {
		s := w.report.IndustryBias[industry]
		rows = append(rows, []string{
			industry,
			fmt.Sprintf("%.1f%%", s.International),
			fmt.Sprintf("%.1f%%", s.Chinese),
			fmt.Sprintf("%.2f×", s.BiasRatio),
		})
	}
	return table{
		name:    "table5_cultural_bias_industry",
		caption: "Cultural Bias by Industry",
		note:    "Ratio >1 indicates Chinese LLMs show higher brand mention rates.",
		columns: []string{"Industry", "Intl Mention", "China Mention", "Bias Ratio"},
		rows:    rows,
	}
}

func (t table) latex() string {
	var b strings.Builder
	b.WriteString("\\begin{table}[htbp]\n\\centering\n")
	fmt.Fprintf(&b, "\\begin{tabular}{l%s}\n\\hline\n", strings.Repeat("c", len(t.columns)-1))
	b.WriteString(strings.Join(t.columns, " & "))
	b.WriteString(" \\\\\n\\hline\n")
	for _, row := range t.rows {
		b.WriteString(strings.Join(row, " & "))
		b.WriteString(" \\\\\n")
	}
	b.WriteString("\\hline\n\\end{tabular}\n")
	fmt.Fprintf(&b, "\\caption{%s}\n", t.caption)
	fmt.Fprintf(&b, "\\label{tab:%s}\n", strings.ReplaceAll(strings.ToLower(t.caption), " ", "_"))
	fmt.Fprintf(&b, "\\footnotesize{\\textit{Note:} %s}\n", t.note)
	b.WriteString("\\end{table}\n")
	return b.String()
}

func (t table) writeCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	cw := csv.NewWriter(f)
	if err := cw.Write(t.columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range t.rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func latexP(p float64) string {
	if p < 0.001 {
		return "<0.001"
	}
	return fmt.Sprintf("=%.3f", p)
}
