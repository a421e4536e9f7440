package biz

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadRawDocs_DerivesDocIDs(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "01_policies.md", "## Rules\nBody.\n")
	writeDoc(t, dir, "02_seller_faq.md", "## FAQ\nBody.\n")
	writeDoc(t, dir, "glossary.md", "## Terms\nBody.\n")
	writeDoc(t, dir, "notes.txt", "not markdown")

	rawDocs, err := LoadRawDocs(dir)
	require.NoError(t, err)
	require.Len(t, rawDocs, 3)

	// Sorted by filename, ordering prefix stripped at the first underscore.
	assert.Equal(t, "policies", rawDocs[0].DocID)
	assert.Equal(t, "seller_faq", rawDocs[1].DocID)
	assert.Equal(t, "glossary", rawDocs[2].DocID)

	assert.Equal(t, filepath.Join(dir, "01_policies.md"), rawDocs[0].Path)
	assert.Equal(t, "## Rules\nBody.\n", rawDocs[0].Content)
}

func TestLoadRawDocs_MissingDir(t *testing.T) {
	_, err := LoadRawDocs(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDocsNotFound))
}

func TestLoadRawDocs_PathIsFile(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "file.md", "content")

	_, err := LoadRawDocs(filepath.Join(dir, "file.md"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDocsNotFound))
}

func TestLoadRawDocs_NoMarkdownFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "readme.txt", "not markdown")

	_, err := LoadRawDocs(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyCorpus))
}
