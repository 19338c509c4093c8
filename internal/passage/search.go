package passage

import "github.com/sahilm/fuzzy"

// Entry is a catalog passage with its position in the catalog.
type Entry struct {
	Index int
	Text  string
}

// Search fuzzy-matches query against the catalog, best match first.
// An empty query returns every passage in catalog order.
func Search(catalog []string, query string) []Entry {
	if query == "" {
		entries := make([]Entry, len(catalog))
		for i, text := range catalog {
			entries[i] = Entry{Index: i, Text: text}
		}
		return entries
	}
	matches := fuzzy.Find(query, catalog)
	entries := make([]Entry, 0, len(matches))
	for _, match := range matches {
		entries = append(entries, Entry{Index: match.Index, Text: match.Str})
	}
	return entries
}
