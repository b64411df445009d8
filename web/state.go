// ABOUTME: Search UI state as a closed set of values
// ABOUTME: Exactly one of Idle, Loading, Success or Failure describes the screen

package web

import "repo-search-api/reposearch"

// State is the current search screen state
type State interface {
	// Name is a short label used in logs and markup
	Name() string

	isState()
}

// Idle is the state before the first search
type Idle struct{}

// Loading is the state while a request is in flight
type Loading struct {
	Criteria reposearch.Criteria
}

// Success holds the results of the last search, possibly empty
type Success struct {
	Results []reposearch.Repository
}

// Failure holds the message shown for the last failed search
type Failure struct {
	Message string
}

func (Idle) Name() string    { return "idle" }
func (Loading) Name() string { return "loading" }
func (Success) Name() string { return "success" }
func (Failure) Name() string { return "failure" }

func (Idle) isState()    {}
func (Loading) isState() {}
func (Success) isState() {}
func (Failure) isState() {}
