package labels

import "testing"

func TestDefaultRegionMap(t *testing.T) {
	m := DefaultRegionMap()
	cases := []struct {
		model string
		want  Region
	}{
		{"GPT-4o Search Preview", RegionInternational},
		{"Claude Sonnet 4.5", RegionInternational},
		{"Gemini Pro Latest", RegionInternational},
		{"Qwen3 Max Preview", RegionChinese},
		{"DeepSeek V3.2 Exp", RegionChinese},
		{"Doubao 1.5 Thinking Pro", RegionChinese},
		{"Llama 3.1 405B", RegionUnknown},
		{"", RegionUnknown},
	}
	for _, c := range cases {
		if got := m.Region(c.model); got != c.want {
			t.Errorf("Region(%q) = %q, want %q", c.model, got, c.want)
		}
	}
}

func TestRegionMapBalance(t *testing.T) {
	counts := map[Region]int{}
	for _, r := range DefaultRegionMap() {
		counts[r]++
	}
	if counts[RegionInternational] != 3 || counts[RegionChinese] != 3 {
		t.Fatalf("expected 3 models per region, got %v", counts)
	}
}

func TestIndustryLookup(t *testing.T) {
	m := DefaultIndustryMap()
	cases := []struct {
		brand, explicit, want string
	}{
		{"Notion", "", "SaaS"},
		{"Stripe", "", "Fintech"},
		{"Duolingo", "", "Education"},
		{"Nike", "", "Consumer"},
		{"Google", "", "Tech"},
		{"SomeStartup", "", IndustryOther},
		// explicit label wins over lookup
		{"Notion", "Productivity", "Productivity"},
		// exact match only, no partials
		{"notion", "", IndustryOther},
	}
	for _, c := range cases {
		if got := m.Industry(c.brand, c.explicit); got != c.want {
			t.Errorf("Industry(%q, %q) = %q, want %q", c.brand, c.explicit, got, c.want)
		}
	}
}
