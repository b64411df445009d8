// Package core contains the business logic for the repository search API.
// It is framework-agnostic and can be used independently of any web
// framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Search criteria, upstream repositories and ranked results
// - search: Criteria validation, page planning and upstream aggregation
// - scoring: Popularity scoring, ranking and recency labels
// - errors: Custom error types mapped to HTTP statuses and client messages
// - interfaces: Contracts for external dependencies (cache, upstream, logger)
//
// All external dependencies are injected via interfaces.
//
// # Usage Example
//
//	import (
//	    "repo-search-api/core/domain"
//	    "repo-search-api/core/interfaces"
//	    "repo-search-api/core/search"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:    myCache,    // implements interfaces.Cache
//	    Upstream: myUpstream, // implements interfaces.RepositorySearcher
//	    Logger:   myLogger,   // implements interfaces.Logger
//	}
//
//	service := search.NewSearchService(deps)
//
//	results, err := service.SearchRepositories(ctx, domain.SearchCriteria{
//	    Keywords: "angular",
//	    Language: "TypeScript",
//	    MaxPages: 2,
//	})
package core
