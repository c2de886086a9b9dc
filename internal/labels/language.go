package labels

import (
	"strings"
	"unicode"
)

// Language is the detected query language.
type Language string

const (
	LangEnglish Language = "English"
	LangChinese Language = "Chinese"
	LangMixed   Language = "Mixed"
	LangEmpty   Language = "Empty"
)

// Two detectors coexist on purpose. RatioDetector gives the fine-grained
// three-way split used by the language validation report; PresenceDetector is
// the coarse binary filter used when building the English-only subset. They
// disagree on Mixed text, so call sites must pick the one they were written
// against rather than unifying them.

// RatioDetector classifies text by the share of CJK characters after
// stripping whitespace and ASCII punctuation.
type RatioDetector struct {
	// Threshold above which text counts as Chinese. Zero means the default 0.3.
	Threshold float64
}

// Detect returns Chinese when the CJK ratio exceeds the threshold, Mixed for
// any nonzero ratio at or below it, English for no CJK at all, and Empty when
// nothing is left after cleaning.
func (d RatioDetector) Detect(text string) Language {
	threshold := d.Threshold
	if threshold == 0 {
		threshold = 0.3
	}
	var total, chinese int
	for _, r := range text {
		if unicode.IsSpace(r) || isASCIIPunct(r) {
			continue
		}
		total++
		if isCJK(r) {
			chinese++
		}
	}
	if total == 0 {
		return LangEmpty
	}
	ratio := float64(chinese) / float64(total)
	switch {
	case ratio > threshold:
		return LangChinese
	case ratio > 0:
		return LangMixed
	default:
		return LangEnglish
	}
}

// PresenceDetector treats any text containing at least one CJK character as
// non-English, regardless of ratio.
type PresenceDetector struct{}

// ContainsCJK reports whether text has at least one character in the CJK
// unified ideograph range.
func (PresenceDetector) ContainsCJK(text string) bool {
	return strings.ContainsFunc(text, isCJK)
}

// IsEnglish reports whether text contains no CJK characters.
func (d PresenceDetector) IsEnglish(text string) bool {
	return !d.ContainsCJK(text)
}

func isCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

func isASCIIPunct(r rune) bool {
	return r < 0x80 && (unicode.IsPunct(r) || unicode.IsSymbol(r))
}
