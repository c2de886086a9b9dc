package labels

import "strings"

// QueryTypeOther is the fall-through label for queries no rule matches.
const QueryTypeOther = "Other"

type queryRule struct {
	label string
	match func(q string) bool
}

// QueryClassifier assigns exactly one type label per query via an ordered
// cascade of substring rules. The order is load-bearing: queries can satisfy
// several rules and the first match wins (note that any query containing
// "disadvantages" is caught by the earlier "advantages" rule).
type QueryClassifier struct {
	rules []queryRule
}

// NewQueryClassifier builds the classifier with the study's fixed rule order.
func NewQueryClassifier() *QueryClassifier {
	return &QueryClassifier{rules: []queryRule{
		{"What is", func(q string) bool {
			return strings.Contains(q, "What is") && !strings.Contains(q, "do")
		}},
		{"What does", contains("What does")},
		{"Compare", contains("Compare")},
		{"Should I use", contains("Should I use")},
		{"Is...good", func(q string) bool {
			return strings.Contains(q, "Is") && strings.Contains(q, "good")
		}},
		{"Alternatives", containsFold("alternatives")},
		{"Advantages", containsFold("advantages")},
		{"Disadvantages", containsFold("disadvantages")},
		{"Price", func(q string) bool {
			lower := strings.ToLower(q)
			return strings.Contains(lower, "cost") || strings.Contains(lower, "price") ||
				strings.Contains(q, "much")
		}},
		{"When to use", contains("When")},
	}}
}

// Classify returns the label of the first matching rule, QueryTypeOther when
// nothing matches.
func (c *QueryClassifier) Classify(query string) string {
	for _, r := range c.rules {
		if r.match(query) {
			return r.label
		}
	}
	return QueryTypeOther
}

func contains(sub string) func(string) bool {
	return func(q string) bool { return strings.Contains(q, sub) }
}

func containsFold(sub string) func(string) bool {
	return func(q string) bool { return strings.Contains(strings.ToLower(q), sub) }
}
