// ABOUTME: Search domain models for repository discovery
// ABOUTME: Defines search criteria, upstream repository data and ranked results

package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for creation-date bounds and results
const DateLayout = "2006-01-02"

// SearchCriteria holds the filters submitted for one repository search
type SearchCriteria struct {
	// Keywords is the free-text part of the query
	Keywords string

	// Language restricts results to a single programming language
	Language string

	// EarliestCreated is the inclusive lower bound on repository creation date
	EarliestCreated *time.Time

	// MaxPages is the number of upstream result pages to aggregate (0 means default)
	MaxPages int
}

// HasLanguage reports whether a language filter was supplied
func (c SearchCriteria) HasLanguage() bool {
	return c.Language != ""
}

// Query builds the upstream search expression for the criteria
func (c SearchCriteria) Query() string {
	var b strings.Builder
	b.WriteString(c.Keywords)

	if c.HasLanguage() {
		b.WriteString(" language:")
		b.WriteString(c.Language)
	}

	if c.EarliestCreated != nil {
		b.WriteString(" created:>=")
		b.WriteString(c.EarliestCreated.Format(DateLayout))
	}

	return b.String()
}

// CacheKey returns a stable key identifying the criteria
func (c SearchCriteria) CacheKey() string {
	created := ""
	if c.EarliestCreated != nil {
		created = c.EarliestCreated.Format(DateLayout)
	}
	return fmt.Sprintf("search:repos:%s|%s|%s|%d",
		strings.ToLower(strings.TrimSpace(c.Keywords)),
		strings.ToLower(c.Language),
		created,
		c.MaxPages,
	)
}

// RepositoryResult is a ranked repository returned to clients
type RepositoryResult struct {
	Name            string     `json:"name"`
	URL             string     `json:"url"`
	Language        string     `json:"language,omitempty"`
	Created         *time.Time `json:"created,omitempty"`
	Stars           int        `json:"stars"`
	Forks           int        `json:"forks"`
	Recency         string     `json:"recency"`
	PopularityScore float64    `json:"popularityScore"`
}

// UpstreamRepository is a single repository as reported by the code-hosting API
type UpstreamRepository struct {
	ID        int64
	Name      string
	FullName  string
	HTMLURL   string
	Stars     int
	Forks     int
	Language  string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// UpstreamPage is one page of upstream search results
type UpstreamPage struct {
	TotalCount        int
	IncompleteResults bool
	Items             []UpstreamRepository
}

// UpstreamQuery describes a single paginated upstream request
type UpstreamQuery struct {
	Query   string
	Sort    string
	Order   string
	Page    int
	PerPage int
}

// Normalization holds the value ranges used to scale stars and forks
type Normalization struct {
	MinStars int
	MaxStars int
	MinForks int
	MaxForks int
}
