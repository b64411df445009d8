// ABOUTME: Upstream search interface for the external code-hosting API
// ABOUTME: Lets the search service stay independent of the concrete API client

package interfaces

import (
	"context"

	"repo-search-api/core/domain"
)

// RepositorySearcher issues a single paginated repository search against the upstream API.
//
// Implementations must return core errors (ExternalAPIError, TimeoutError, TransportError)
// so callers can map failures to client-facing messages. A page the upstream refuses to
// serve because it lies beyond its result window is returned as an empty page, not an error.
type RepositorySearcher interface {
	SearchRepositories(ctx context.Context, query domain.UpstreamQuery) (*domain.UpstreamPage, error)
}
