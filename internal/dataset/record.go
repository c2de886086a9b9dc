package dataset

// Record is one LLM response to one query about one brand. Two schema
// variants exist in the collected data: the final export uses
// model/query/analysis.*, the raw task exports use llm/actual_query/response.*.
// Accessors below normalize over both; callers should never read the raw
// fields directly.
type Record struct {
	Model       string    `json:"model,omitempty"`
	LLM         string    `json:"llm,omitempty"`
	Brand       string    `json:"brand"`
	Query       string    `json:"query,omitempty"`
	ActualQuery string    `json:"actual_query,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	Analysis    *Analysis `json:"analysis,omitempty"`
	Response    *Response `json:"response,omitempty"`
}

// Analysis is the nested annotation block of the final export schema.
type Analysis struct {
	BrandMentioned bool      `json:"brand_mentioned"`
	Sentiment      Sentiment `json:"sentiment"`
}

// Sentiment holds the sentiment label for the final export schema.
type Sentiment struct {
	Label string `json:"label"`
}

// Response is the annotation block of the raw task export schema.
type Response struct {
	Mention   bool   `json:"mention"`
	Sentiment string `json:"sentiment"`
}

// sentimentScores maps sentiment labels onto the -1/0/+1 scale used by all
// sentiment aggregates. Unrecognized labels score 0.
var sentimentScores = map[string]int{
	"positive": 1,
	"neutral":  0,
	"negative": -1,
}

// ModelName returns the LLM identifier regardless of schema variant.
func (r *Record) ModelName() string {
	if r.Model != "" {
		return r.Model
	}
	return r.LLM
}

// QueryText returns the literal query sent to the model.
func (r *Record) QueryText() string {
	if r.Query != "" {
		return r.Query
	}
	return r.ActualQuery
}

// Mentioned reports whether the brand was mentioned in the response.
func (r *Record) Mentioned() bool {
	if r.Analysis != nil {
		return r.Analysis.BrandMentioned
	}
	if r.Response != nil {
		return r.Response.Mention
	}
	return false
}

// SentimentLabel returns the sentiment label (positive/neutral/negative).
func (r *Record) SentimentLabel() string {
	if r.Analysis != nil {
		return r.Analysis.Sentiment.Label
	}
	if r.Response != nil {
		return r.Response.Sentiment
	}
	return ""
}

// SentimentScore maps the sentiment label onto {-1, 0, 1}.
func (r *Record) SentimentScore() int {
	return sentimentScores[r.SentimentLabel()]
}
