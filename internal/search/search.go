// Package search provides full-text search over conversion history,
// using Meilisearch when available and PostgreSQL FTS as a fallback.
package search

// Result is a single search hit returned to the caller.
type Result struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Snippet   string `json:"snippet"`
	Operation string `json:"operation"`
}

// Query describes a search request. UserID scopes results to the
// requesting account.
type Query struct {
	Text   string
	UserID string
	Limit  int
	Offset int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// Searcher can execute a full-text search.
type Searcher interface {
	Search(q Query) ([]Result, int, error)
	Healthy() bool
}

// Record is the data we index for a history entry.
type Record struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Label     string `json:"label"`
	Content   string `json:"content"`
	Operation string `json:"operation"`
}
