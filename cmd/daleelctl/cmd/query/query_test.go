package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b c", truncate("a\n b\tc", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestResultTable(t *testing.T) {
	table := resultTable([]sdk.QueryResult{{
		Title:          "Onboarding",
		RelevanceScore: 0.876,
		AssetType:      sdk.AssetDocument,
		DomainName:     "HR",
		CategoryName:   "Guides",
		ContentSnippet: "Welcome aboard",
	}})
	require.Len(t, table, 2)
	assert.Equal(t, []string{"0.88", "Onboarding", "document", "HR / Guides", "Welcome aboard"}, table[1])
}
