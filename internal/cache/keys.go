package cache

import (
	"fmt"
	"strings"
)

// Cache key layout. Search keys carry a namespace version so that bumping
// the version invalidates every cached search result at once, without
// enumerating discrete keys.
const (
	AllBooksKey      = "books"
	LeaderboardKey   = "popular_books"
	SearchVersionKey = "search:ver"
)

// BookKey derives the cache key for a single book.
func BookKey(id int64) string {
	return fmt.Sprintf("book:%d", id)
}

// SearchKey derives the cache key for a search query. Filters are
// lower-cased so case-variant queries share one entry; an absent filter
// contributes an empty segment.
func SearchKey(version int64, title, author string) string {
	return fmt.Sprintf("search:v%d:%s:%s", version, strings.ToLower(title), strings.ToLower(author))
}
