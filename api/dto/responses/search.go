// ABOUTME: Response DTOs for the repository search endpoints
// ABOUTME: Defines the JSON shape of ranked repositories and health checks

package responses

// RepositoryResponse is one ranked repository
type RepositoryResponse struct {
	Name            string  `json:"name" doc:"Repository name"`
	URL             string  `json:"url" doc:"Repository web page"`
	Language        string  `json:"language,omitempty" doc:"Primary programming language"`
	Created         string  `json:"created,omitempty" doc:"Creation date (YYYY-MM-DD)"`
	Stars           int     `json:"stars" doc:"Stargazer count"`
	Forks           int     `json:"forks" doc:"Fork count"`
	Recency         string  `json:"recency" doc:"Age of the repository, e.g. '3 years ago'"`
	PopularityScore float64 `json:"popularityScore" doc:"Relative popularity from 0 to 10, one decimal"`
}

// HealthResponse reports server liveness
type HealthResponse struct {
	Status string `json:"status" doc:"Always 'ok' while the server is serving" example:"ok"`
}
