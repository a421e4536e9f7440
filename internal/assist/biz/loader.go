// Package biz implements the seller-assist business logic: document loading,
// section extraction, chunking, indexing, retrieval, grounded answering, and
// intent routing.
package biz

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kart-io/logger"

	"github.com/marketx/seller-assist/internal/model"
)

// LoadRawDocs loads all markdown documents from docsDir, sorted by filename.
//
// The document identifier is derived from the filename stem: an ordering
// prefix before the first underscore is stripped ("01_overview" -> "overview"),
// otherwise the whole stem is used.
func LoadRawDocs(docsDir string) ([]model.RawDocument, error) {
	info, err := os.Stat(docsDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDocsNotFound, docsDir)
	}

	paths, err := filepath.Glob(filepath.Join(docsDir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("failed to list markdown files: %w", err)
	}
	sort.Strings(paths)

	rawDocs := make([]model.RawDocument, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		docID := stem
		if idx := strings.Index(stem, "_"); idx >= 0 {
			docID = stem[idx+1:]
		}

		rawDocs = append(rawDocs, model.RawDocument{
			DocID:   docID,
			Path:    path,
			Content: string(content),
		})
	}

	if len(rawDocs) == 0 {
		return nil, fmt.Errorf("%w: no markdown documents in %s", ErrEmptyCorpus, docsDir)
	}

	logger.Infow("loaded seller documentation", "docs_dir", docsDir, "documents", len(rawDocs))
	return rawDocs, nil
}
