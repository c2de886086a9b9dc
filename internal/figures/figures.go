// Package figures renders the paper's charts from a saved analysis report.
// Every figure is written as both PNG and PDF.
package figures

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/geostat-labs/biascope/internal/labels"
	"github.com/geostat-labs/biascope/internal/report"
)

var (
	colorInternational = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	colorChinese       = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
)

// Renderer draws figures from an analysis report.
type Renderer struct {
	report  *report.Analysis
	regions labels.RegionMap
}

// NewRenderer returns a Renderer over a saved analysis report.
func NewRenderer(a *report.Analysis, regions labels.RegionMap) *Renderer {
	return &Renderer{report: a, regions: regions}
}

// WriteAll renders every figure into dir. The sentiment-distribution figure
// needs the raw per-region score samples; pass nil slices to skip it.
func (r *Renderer) WriteAll(dir string, intlScores, chinaScores []float64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir figures dir: %w", err)
	}
	steps := []struct {
		name string
		fn   func(base string) error
	}{
		{"figure1_sentiment_distribution", r.sentimentDistribution},
		{"figure2_brand_mention_by_llm", r.mentionByLLM},
		{"figure3_recommendation_loyalty", r.recommendationLoyalty},
		{"figure4_industry_cultural_bias", r.industryHeatmap},
	}
	for _, s := range steps {
		if err := s.fn(filepath.Join(dir, s.name)); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	if len(intlScores) > 0 && len(chinaScores) > 0 {
		base := filepath.Join(dir, "figure5_sentiment_box")
		if err := r.sentimentBox(base, intlScores, chinaScores); err != nil {
			return fmt.Errorf("figure5_sentiment_box: %w", err)
		}
	}
	return nil
}

// sentimentDistribution is the positive-sentiment rate bar chart by region.
func (r *Renderer) sentimentDistribution(base string) error {
	byRegion := r.report.Sentiment.ByRegion
	intl := byRegion[string(labels.RegionInternational)]
	china := byRegion[string(labels.RegionChinese)]

	p := plot.New()
	p.Title.Text = "Sentiment Distribution by Region"
	p.Y.Label.Text = "Positive Sentiment Rate (%)"
	p.Y.Max = 100

	intlBar, err := plotter.NewBarChart(plotter.Values{intl.PositiveRate}, vg.Points(40))
	if err != nil {
		return err
	}
	intlBar.Color = colorInternational
	intlBar.Offset = -vg.Points(22)
	chinaBar, err := plotter.NewBarChart(plotter.Values{china.PositiveRate}, vg.Points(40))
	if err != nil {
		return err
	}
	chinaBar.Color = colorChinese
	chinaBar.Offset = vg.Points(22)

	p.Add(intlBar, chinaBar)
	p.Legend.Add("International", intlBar)
	p.Legend.Add("Chinese", chinaBar)
	p.Legend.Top = true
	p.NominalX("Region")

	return saveBoth(p, 8*vg.Inch, 6*vg.Inch, base)
}

// mentionByLLM is the horizontal mention-rate bar chart, one bar per LLM,
// colored by region, ascending by rate.
func (r *Renderer) mentionByLLM(base string) error {
	byLLM := r.report.MentionRates.ByLLM
	llms := make([]string, 0, len(byLLM))
	for llm := range byLLM {
		llms = append(llms, llm)
	}
	sort.Slice(llms, func(i, j int) bool {
		if byLLM[llms[i]].Rate != byLLM[llms[j]].Rate {
			return byLLM[llms[i]].Rate < byLLM[llms[j]].Rate
		}
		return llms[i] < llms[j]
	})

	p := plot.New()
	p.Title.Text = "Brand Mention Rate by LLM"
	p.X.Label.Text = "Brand Mention Rate (%)"
	p.X.Max = 100

	// One single-value series per LLM so each bar carries its region color.
	for i, llm := range llms {
		vals := make(plotter.Values, len(llms))
		vals[i] = byLLM[llm].Rate
		bar, err := plotter.NewBarChart(vals, vg.Points(18))
		if err != nil {
			return err
		}
		bar.Horizontal = true
		bar.Color = colorInternational
		if r.regions.Region(llm) == labels.RegionChinese {
			bar.Color = colorChinese
		}
		p.Add(bar)
	}
	p.NominalY(llms...)

	return saveBoth(p, 12*vg.Inch, 6*vg.Inch, base)
}

// recommendationLoyalty shows per-LLM loyalty rates in recommendation
// queries, grouped by region.
func (r *Renderer) recommendationLoyalty(base string) error {
	byLLM := r.report.Recommendations.ByLLM
	var intlRates, chinaRates plotter.Values
	for llm, s := range byLLM {
		if r.regions.Region(llm) == labels.RegionChinese {
			chinaRates = append(chinaRates, s.Rate)
		} else {
			intlRates = append(intlRates, s.Rate)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(intlRates)))
	sort.Sort(sort.Reverse(sort.Float64Slice(chinaRates)))
	n := len(intlRates)
	if len(chinaRates) < n {
		n = len(chinaRates)
	}
	if n == 0 {
		return fmt.Errorf("need at least one LLM per region")
	}

	p := plot.New()
	p.Title.Text = "Brand Loyalty in Recommendation Queries by Region"
	p.Y.Label.Text = "Brand Mention Rate (%)"

	w := vg.Points(20)
	intlBar, err := plotter.NewBarChart(intlRates[:n], w)
	if err != nil {
		return err
	}
	intlBar.Color = colorInternational
	intlBar.Offset = -w / 2
	chinaBar, err := plotter.NewBarChart(chinaRates[:n], w)
	if err != nil {
		return err
	}
	chinaBar.Color = colorChinese
	chinaBar.Offset = w / 2

	p.Add(intlBar, chinaBar)
	p.Legend.Add("International", intlBar)
	p.Legend.Add("Chinese", chinaBar)
	p.Legend.Top = true
	ranks := make([]string, n)
	for i := range ranks {
		ranks[i] = fmt.Sprintf("Rank %d", i+1)
	}
	p.NominalX(ranks...)

	return saveBoth(p, 12*vg.Inch, 6*vg.Inch, base)
}

// industryHeatmap draws the 2×N mention-rate grid, regions by industries.
func (r *Renderer) industryHeatmap(base string) error {
	bias := r.report.IndustryBias
	industries := make([]string, 0, len(bias))
	for industry := range bias {
		industries = append(industries, industry)
	}
	sort.Strings(industries)
	if len(industries) == 0 {
		return fmt.Errorf("no industry data in report")
	}

	grid := &rateGrid{industries: industries}
	for _, industry := range industries {
		grid.intl = append(grid.intl, bias[industry].International)
		grid.china = append(grid.china, bias[industry].Chinese)
	}

	p := plot.New()
	p.Title.Text = "Cultural Bias by Industry"
	heat := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	heat.Min, heat.Max = 0, 100
	p.Add(heat)
	p.NominalX(industries...)
	p.NominalY(string(labels.RegionInternational), string(labels.RegionChinese))

	return saveBoth(p, 10*vg.Inch, 6*vg.Inch, base)
}

// sentimentBox draws the per-region sentiment score distributions.
func (r *Renderer) sentimentBox(base string, intl, china []float64) error {
	p := plot.New()
	p.Title.Text = "Sentiment Score Distribution by Region"
	p.Y.Label.Text = "Sentiment Score"
	p.Y.Min, p.Y.Max = -1.5, 1.5

	intlBox, err := plotter.NewBoxPlot(vg.Points(50), 0, plotter.Values(intl))
	if err != nil {
		return err
	}
	intlBox.FillColor = colorInternational
	chinaBox, err := plotter.NewBoxPlot(vg.Points(50), 1, plotter.Values(china))
	if err != nil {
		return err
	}
	chinaBox.FillColor = colorChinese

	p.Add(intlBox, chinaBox)
	p.NominalX(string(labels.RegionInternational), string(labels.RegionChinese))

	return saveBoth(p, 8*vg.Inch, 6*vg.Inch, base)
}

// rateGrid adapts the 2×N industry rate matrix to plotter.GridXYZ.
// Row 0 is International, row 1 Chinese.
type rateGrid struct {
	industries []string
	intl       []float64
	china      []float64
}

func (g *rateGrid) Dims() (c, r int) { return len(g.industries), 2 }
func (g *rateGrid) X(c int) float64  { return float64(c) }
func (g *rateGrid) Y(r int) float64  { return float64(r) }
func (g *rateGrid) Z(c, r int) float64 {
	if r == 0 {
		return g.intl[c]
	}
	return g.china[c]
}

func saveBoth(p *plot.Plot, w, h vg.Length, base string) error {
	if err := p.Save(w, h, base+".png"); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	if err := p.Save(w, h, base+".pdf"); err != nil {
		return fmt.Errorf("save pdf: %w", err)
	}
	return nil
}
