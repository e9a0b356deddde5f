// Package stats provides pure aggregation functions over blog collections.
// Every function is deterministic and free of side effects; none of them
// touch the store or the transport. Ties are always broken in favour of the
// earliest occurrence in the input, which keeps results stable across runs.
package stats

import "errors"

// ErrNoEntries is returned by aggregations that are undefined on an empty
// collection.
var ErrNoEntries = errors.New("stats: no entries")

// Entry is the projection of a blog the aggregations operate on.
type Entry struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// AuthorCount is the result of MostBlogs.
type AuthorCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes is the result of MostLikes.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes sums the likes of all entries. Zero for an empty collection.
func TotalLikes(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Likes
	}
	return total
}

// FavoriteBlog returns the entry with the greatest number of likes.
// A later entry displaces the current favorite only with strictly more
// likes, so equal-liked entries resolve to the earliest one.
func FavoriteBlog(entries []Entry) (Entry, error) {
	if len(entries) == 0 {
		return Entry{}, ErrNoEntries
	}

	fav := entries[0]
	for _, e := range entries[1:] {
		if e.Likes > fav.Likes {
			fav = e
		}
	}
	return fav, nil
}

// MostBlogs returns the author with the most entries. On equal counts the
// author whose first entry appears earliest in the input wins, so the
// totals are accumulated before any comparison happens.
func MostBlogs(entries []Entry) (AuthorCount, error) {
	if len(entries) == 0 {
		return AuthorCount{}, ErrNoEntries
	}

	counts := make(map[string]int, len(entries))
	top := 0
	for _, e := range entries {
		counts[e.Author]++
		if counts[e.Author] > top {
			top = counts[e.Author]
		}
	}

	// Input-order walk: the first author holding the winning total is
	// the one with the earliest first occurrence.
	for _, e := range entries {
		if counts[e.Author] == top {
			return AuthorCount{Author: e.Author, Blogs: top}, nil
		}
	}
	return AuthorCount{}, ErrNoEntries
}

// MostLikes returns the author whose entries have the highest combined
// number of likes. Ties resolve like MostBlogs: totals first, then an
// input-order walk to the earliest first occurrence.
func MostLikes(entries []Entry) (AuthorLikes, error) {
	if len(entries) == 0 {
		return AuthorLikes{}, ErrNoEntries
	}

	totals := make(map[string]int, len(entries))
	for _, e := range entries {
		totals[e.Author] += e.Likes
	}

	top := totals[entries[0].Author]
	for _, total := range totals {
		if total > top {
			top = total
		}
	}

	for _, e := range entries {
		if totals[e.Author] == top {
			return AuthorLikes{Author: e.Author, Likes: top}, nil
		}
	}
	return AuthorLikes{}, ErrNoEntries
}
