// Package labels derives categorical attributes (region, industry, query
// type, query language) from raw records. All lookup tables are immutable
// values injected by the caller, so every classifier here is a pure function
// of its inputs.
package labels

// Region classifies an LLM as International or Chinese by fixed lookup.
type Region string

const (
	RegionInternational Region = "International"
	RegionChinese       Region = "Chinese"
	RegionUnknown       Region = "Unknown"
)

// RegionMap maps canonical LLM names to their region. Any model not in the
// map is Unknown; Unknown models are excluded from region-level aggregates
// but still appear in per-model aggregates.
type RegionMap map[string]Region

// DefaultRegionMap covers the six models in the study.
func DefaultRegionMap() RegionMap {
	return RegionMap{
		"GPT-4o Search Preview":   RegionInternational,
		"Claude Sonnet 4.5":       RegionInternational,
		"Gemini Pro Latest":       RegionInternational,
		"Qwen3 Max Preview":       RegionChinese,
		"DeepSeek V3.2 Exp":       RegionChinese,
		"Doubao 1.5 Thinking Pro": RegionChinese,
	}
}

// Region returns the region for the given model name, RegionUnknown if the
// model is not mapped. Total over any string input.
func (m RegionMap) Region(model string) Region {
	if r, ok := m[model]; ok {
		return r
	}
	return RegionUnknown
}
