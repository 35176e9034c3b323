// Package identity folds recorded author identities into canonical
// contributors and gives each contributor a stable presentation order
// and color.
package identity

import (
	"sort"

	"github.com/huangsam/gitshare/schema"
)

// AliasTable maps a canonical author name to its known alternate names.
type AliasTable map[string][]string

// canonicalOwners inverts the table into alias -> canonical lookups.
func (t AliasTable) canonicalOwners() map[string]string {
	owners := make(map[string]string)
	for canonical, aliases := range t {
		for _, alias := range aliases {
			owners[alias] = canonical
		}
	}
	return owners
}

// Fold merges alias counts into their canonical entry. An author name that
// is listed as an alias never appears in the result; its count is added to
// the canonical contributor, whether or not the canonical name was recorded
// on its own.
func Fold(raw schema.AuthorCounts, aliases AliasTable) schema.AuthorCounts {
	owners := aliases.canonicalOwners()
	folded := make(schema.AuthorCounts, len(raw))
	for author, count := range raw {
		if canonical, ok := owners[author]; ok {
			folded[canonical] += count
		} else {
			folded[author] += count
		}
	}
	return folded
}

// SortedAuthors returns the author names in strict alphabetical order.
func SortedAuthors(counts schema.AuthorCounts) []string {
	authors := make([]string, 0, len(counts))
	for author := range counts {
		authors = append(authors, author)
	}
	sort.Strings(authors)
	return authors
}

// Shares folds the raw counts and returns them as ordered author shares.
func Shares(raw schema.AuthorCounts, aliases AliasTable) []schema.AuthorShare {
	folded := Fold(raw, aliases)
	authors := SortedAuthors(folded)
	shares := make([]schema.AuthorShare, 0, len(authors))
	for _, author := range authors {
		shares = append(shares, schema.AuthorShare{Author: author, Count: folded[author]})
	}
	return shares
}
