package biz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketx/seller-assist/internal/model"
	"github.com/marketx/seller-assist/internal/pkg/textutil"
)

func TestChunkSection_EmptyTextReturnsNil(t *testing.T) {
	section := model.Section{Section: "Fees", Text: "   \n  "}
	assert.Nil(t, ChunkSection(section, "fees", 600, 100))
}

func TestChunkSection_ShortTextSingleChunk(t *testing.T) {
	section := model.Section{
		Section:   "Fees",
		Text:      "Commission is 10 percent.",
		StartLine: 3,
		EndLine:   5,
	}

	chunks := ChunkSection(section, "fees", 600, 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "fees", chunks[0].DocID)
	assert.Equal(t, "Commission is 10 percent.", chunks[0].Text)
	assert.Equal(t, "Fees", chunks[0].Section)
	assert.Equal(t, 3, chunks[0].StartLine)
	assert.Equal(t, 5, chunks[0].EndLine)
}

func TestChunkSection_OverlapAndSizeBounds(t *testing.T) {
	text := strings.Repeat("a", 250) + strings.Repeat("b", 250) + strings.Repeat("c", 250)
	section := model.Section{Section: "Rules", Text: text}

	chunks := ChunkSection(section, "rules", 300, 50)
	require.True(t, len(chunks) > 1)

	for i, c := range chunks {
		assert.LessOrEqual(t, textutil.RuneLen(c.Text), 300, "chunk %d exceeds size", i)
	}

	// Consecutive chunks share exactly the overlap.
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Text)
		cur := []rune(chunks[i].Text)
		tail := string(prev[len(prev)-50:])
		head := string(cur[:50])
		assert.Equal(t, tail, head, "chunks %d/%d do not overlap", i-1, i)
	}

	// Dropping each chunk's leading overlap reconstructs the section text.
	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0].Text)
	for i := 1; i < len(chunks); i++ {
		cur := []rune(chunks[i].Text)
		rebuilt.WriteString(string(cur[50:]))
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestChunkDocs_AssignsSequentialIDs(t *testing.T) {
	rawDocs := []model.RawDocument{
		{
			DocID: "policies",
			Path:  "data/docs/01_policies.md",
			Content: "## Listing Rules\n" +
				strings.Repeat("List rules text. ", 60) + "\n" +
				"## Fees\nCommission is 10 percent.\n",
		},
		{
			DocID:   "faq",
			Path:    "data/docs/02_faq.md",
			Content: "## Common Questions\nHow do payouts work?\n",
		},
	}

	chunks, err := ChunkDocs(rawDocs, 600, 100)
	require.NoError(t, err)
	require.True(t, len(chunks) >= 4)

	seen := make(map[string]bool)
	perDoc := make(map[string]int)
	for _, c := range chunks {
		assert.False(t, seen[c.ChunkID], "duplicate chunk id %s", c.ChunkID)
		seen[c.ChunkID] = true

		perDoc[c.DocID]++
		expected := fmt.Sprintf("%s_%03d", c.DocID, perDoc[c.DocID])
		assert.Equal(t, expected, c.ChunkID)
	}

	assert.Equal(t, 1, perDoc["faq"])
	assert.True(t, perDoc["policies"] >= 3)

	for _, c := range chunks {
		if c.DocID == "faq" {
			assert.Equal(t, "data/docs/02_faq.md", c.Path)
			assert.Equal(t, "Common Questions", c.Section)
		}
	}
}

func TestChunkDocs_EmptyCorpus(t *testing.T) {
	rawDocs := []model.RawDocument{
		{DocID: "blank", Path: "blank.md", Content: "   \n"},
	}

	_, err := ChunkDocs(rawDocs, 600, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyCorpus))
}
