package labels

import "testing"

func TestRatioDetector(t *testing.T) {
	d := RatioDetector{}
	cases := []struct {
		text string
		want Language
	}{
		{"Should I use Notion for my team?", LangEnglish},
		{"推荐一个好用的笔记软件", LangChinese},
		// 1 CJK char out of 13 after cleaning, below the 0.3 threshold
		{"What is Notion 好", LangMixed},
		// 3 CJK out of 9 is above 0.3
		{"Notion 怎么样", LangChinese},
		{"", LangEmpty},
		{"?!... ", LangEmpty},
	}
	for _, c := range cases {
		if got := d.Detect(c.text); got != c.want {
			t.Errorf("Detect(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestRatioDetectorThreshold(t *testing.T) {
	// "Notion 怎么样" has CJK ratio 1/3; a higher threshold flips it to Mixed.
	strict := RatioDetector{Threshold: 0.5}
	if got := strict.Detect("Notion 怎么样"); got != LangMixed {
		t.Fatalf("Detect with threshold 0.5 = %q, want %q", got, LangMixed)
	}
}

func TestPresenceDetector(t *testing.T) {
	d := PresenceDetector{}
	if !d.IsEnglish("Should I use Notion for my team?") {
		t.Error("pure ASCII query should be English")
	}
	if d.IsEnglish("What is Notion 好") {
		t.Error("query with any CJK character should not be English")
	}
	if !d.ContainsCJK("小红书") {
		t.Error("ContainsCJK should detect CJK brand names")
	}
	if d.ContainsCJK("Notion") {
		t.Error("ContainsCJK should be false for Latin text")
	}
}

// The two detectors disagree on mixed text; the subset filter relies on the
// strict presence semantics.
func TestDetectorsDivergeOnMixedText(t *testing.T) {
	text := "What is Notion 好"
	if got := (RatioDetector{}).Detect(text); got != LangMixed {
		t.Fatalf("ratio detector = %q, want %q", got, LangMixed)
	}
	if (PresenceDetector{}).IsEnglish(text) {
		t.Fatal("presence detector should reject mixed text")
	}
}
