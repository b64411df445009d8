// ABOUTME: Pagination planning for upstream repository searches
// ABOUTME: Decides how many upstream pages are worth fetching for a query

package search

// UpstreamResultWindow is the number of results the upstream search API will page through
const UpstreamResultWindow = 1000

// PlanPages returns how many pages to request given the upstream total count,
// the number of pages the client asked for and the page size.
func PlanPages(totalCount, requested, perPage int) int {
	// Handle invalid perPage
	if perPage < 1 {
		return 0
	}

	if totalCount <= 0 || requested <= 0 {
		return 0
	}

	if totalCount > UpstreamResultWindow {
		totalCount = UpstreamResultWindow
	}

	available := (totalCount + perPage - 1) / perPage
	if requested < available {
		return requested
	}
	return available
}
