// ABOUTME: Validation and defaulting of repository search criteria
// ABOUTME: Collects every violated rule so clients see all problems at once

package search

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"repo-search-api/core/domain"
	coreerrors "repo-search-api/core/errors"
	timeutil "repo-search-api/pkg/utils/time"
)

// Validation limits
const (
	MaxKeywordsLength = 50
	MinPages          = 1
	MaxPages          = 5
)

// Validation messages returned to clients
const (
	MsgKeywordsBlank    = "Keywords must not be blank"
	MsgKeywordsLength   = "Search keywords must be 1 to 50 characters long"
	MsgLanguagePattern  = "Programming language must be a single string without spaces or commas"
	MsgEarliestDateISO  = "Earliest created date must be an ISO date (YYYY-MM-DD)"
	MsgEarliestDatePast = "Earliest created date must be in the past"
	MsgMaxPages         = "Max pages to be searched must be between 1 and 5"
)

var languagePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ParseCriteria builds SearchCriteria from raw string parameters as they arrive from
// a query string or form. Empty optional values are treated as absent.
func ParseCriteria(keywords, language, earliestCreated, maxPages string, now time.Time) (domain.SearchCriteria, error) {
	criteria := domain.SearchCriteria{
		Keywords: keywords,
		Language: strings.TrimSpace(language),
	}
	verr := &coreerrors.ValidationError{}

	if created, ok := timeutil.ParseDate(earliestCreated); ok {
		criteria.EarliestCreated = created
	} else {
		verr.Add("earliestCreatedDate", MsgEarliestDateISO)
	}

	if raw := strings.TrimSpace(maxPages); raw != "" {
		pages, err := strconv.Atoi(raw)
		if err != nil {
			verr.Add("maxPages", MsgMaxPages)
		} else {
			criteria.MaxPages = pages
			if pages == 0 {
				// explicit zero is out of range, not "use the default"
				verr.Add("maxPages", MsgMaxPages)
			}
		}
	}

	collectViolations(criteria, now, verr)
	if verr.HasViolations() {
		return domain.SearchCriteria{}, verr
	}
	return criteria, nil
}

// Validate checks criteria built directly by library callers
func Validate(criteria domain.SearchCriteria, now time.Time) error {
	verr := &coreerrors.ValidationError{}
	collectViolations(criteria, now, verr)
	if verr.HasViolations() {
		return verr
	}
	return nil
}

// WithDefaults fills in the page count when it was not supplied
func WithDefaults(criteria domain.SearchCriteria, defaultPages int) domain.SearchCriteria {
	if criteria.MaxPages == 0 {
		criteria.MaxPages = defaultPages
	}
	criteria.Keywords = strings.TrimSpace(criteria.Keywords)
	return criteria
}

func collectViolations(criteria domain.SearchCriteria, now time.Time, verr *coreerrors.ValidationError) {
	keywordsLen := utf8.RuneCountInString(criteria.Keywords)
	if strings.TrimSpace(criteria.Keywords) == "" {
		verr.Add("keywords", MsgKeywordsBlank)
	}
	if keywordsLen < 1 || keywordsLen > MaxKeywordsLength {
		verr.Add("keywords", MsgKeywordsLength)
	}

	if criteria.HasLanguage() && !languagePattern.MatchString(criteria.Language) {
		verr.Add("language", MsgLanguagePattern)
	}

	if criteria.EarliestCreated != nil {
		today := timeutil.DateOnly(now)
		if !timeutil.DateOnly(*criteria.EarliestCreated).Before(today) {
			verr.Add("earliestCreatedDate", MsgEarliestDatePast)
		}
	}

	if criteria.MaxPages < 0 || criteria.MaxPages > MaxPages {
		verr.Add("maxPages", MsgMaxPages)
	}
}
