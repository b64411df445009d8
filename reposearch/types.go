// ABOUTME: Public types for the repository search client library
// ABOUTME: Mirrors the JSON contract of the search proxy

package reposearch

// Criteria are the filters of one search. Zero values are omitted from the request.
type Criteria struct {
	// Keywords is required by the proxy
	Keywords string

	// Language restricts results to one programming language
	Language string

	// EarliestCreatedDate is an ISO date (YYYY-MM-DD)
	EarliestCreatedDate string

	// MaxPages is the number of result pages to aggregate; 0 lets the proxy choose
	MaxPages int
}

// Repository is one ranked search result
type Repository struct {
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	Language        string  `json:"language,omitempty"`
	Created         string  `json:"created,omitempty"`
	Stars           int     `json:"stars"`
	Forks           int     `json:"forks"`
	Recency         string  `json:"recency"`
	PopularityScore float64 `json:"popularityScore"`
}
