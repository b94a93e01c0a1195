// Package search holds web search backends for the search tool.
//
// DuckDuckGo scrapes the lite HTML interface and needs no key. Tavily calls
// the JSON API and needs TAVILY_API_KEY. Neither backend retries or rate
// limits.
package search
