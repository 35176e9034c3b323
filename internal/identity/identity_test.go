package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/gitshare/schema"
)

func TestFold(t *testing.T) {
	aliases := AliasTable{
		"Alice Smith": {"alice", "asmith"},
	}

	t.Run("aliases merge into canonical", func(t *testing.T) {
		raw := schema.AuthorCounts{"Alice Smith": 5, "alice": 3, "asmith": 2, "Bob": 1}
		folded := Fold(raw, aliases)
		assert.Equal(t, schema.AuthorCounts{"Alice Smith": 10, "Bob": 1}, folded)
	})

	t.Run("canonical absent from raw counts", func(t *testing.T) {
		raw := schema.AuthorCounts{"alice": 3, "asmith": 2}
		folded := Fold(raw, aliases)
		assert.Equal(t, schema.AuthorCounts{"Alice Smith": 5}, folded)
	})

	t.Run("nil alias table is identity", func(t *testing.T) {
		raw := schema.AuthorCounts{"Bob": 4}
		assert.Equal(t, raw, Fold(raw, nil))
	})

	t.Run("folding preserves total", func(t *testing.T) {
		raw := schema.AuthorCounts{"Alice Smith": 5, "alice": 3, "Bob": 1}
		assert.Equal(t, raw.Total(), Fold(raw, aliases).Total())
	})
}

func TestSortedAuthors(t *testing.T) {
	counts := schema.AuthorCounts{"carol": 1, "Alice": 2, "bob": 3}
	assert.Equal(t, []string{"Alice", "bob", "carol"}, SortedAuthors(counts))
}

func TestShares(t *testing.T) {
	aliases := AliasTable{"Alice": {"al"}}
	raw := schema.AuthorCounts{"al": 2, "Bob": 7, "Alice": 1}

	shares := Shares(raw, aliases)
	assert.Equal(t, []schema.AuthorShare{
		{Author: "Alice", Count: 3},
		{Author: "Bob", Count: 7},
	}, shares)
}
