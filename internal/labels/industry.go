package labels

// IndustryOther is the fallback for brands outside every fixed set.
const IndustryOther = "Other"

// IndustryMap maps brand names to industry labels by exact match.
type IndustryMap map[string]string

// DefaultIndustryMap covers the five fixed brand sets of the study.
func DefaultIndustryMap() IndustryMap {
	sets := map[string][]string{
		"SaaS": {"Notion", "Slack", "Zoom", "Salesforce", "HubSpot", "Canva",
			"Figma", "Adobe", "Shopify", "Jira", "Confluence"},
		"Consumer": {"Nike", "Adidas", "Coca-Cola", "Pepsi", "Starbucks",
			"McDonald's", "Tesla", "Toyota", "Honda", "BMW"},
		"Tech": {"Google", "Microsoft", "Apple", "Meta", "Netflix",
			"IBM", "Intel", "Amazon"},
		"Education": {"Coursera", "Udemy", "Duolingo", "Khan Academy", "Chegg"},
		"Fintech":   {"Stripe", "PayPal", "Square", "Visa", "Mastercard"},
	}
	m := make(IndustryMap)
	for industry, brands := range sets {
		for _, b := range brands {
			m[b] = industry
		}
	}
	return m
}

// Industry resolves the industry for a record. An explicit industry label on
// the record wins; otherwise the brand is looked up exactly, falling back to
// IndustryOther. No partial matches.
func (m IndustryMap) Industry(brand, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if industry, ok := m[brand]; ok {
		return industry
	}
	return IndustryOther
}
