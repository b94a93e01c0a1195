package entity

type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}
