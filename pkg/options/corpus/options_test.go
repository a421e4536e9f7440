package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	o := NewOptions()
	assert.Equal(t, "data/docs", o.DocsDir)
	assert.Equal(t, 600, o.ChunkSize)
	assert.Equal(t, 100, o.ChunkOverlap)
	assert.Equal(t, 4, o.TopK)
	assert.Equal(t, "seller_docs", o.Collection)
	assert.Equal(t, 768, o.EmbeddingDim)
	assert.Equal(t, 0.5, o.ConfidenceThreshold)
	assert.True(t, o.BuildOnStartup)
	assert.Empty(t, o.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		errMsg string
	}{
		{"empty docs dir", func(o *Options) { o.DocsDir = "" }, "docs-dir"},
		{"zero chunk size", func(o *Options) { o.ChunkSize = 0 }, "chunk-size"},
		{"negative overlap", func(o *Options) { o.ChunkOverlap = -1 }, "chunk-overlap"},
		{"overlap equals size", func(o *Options) { o.ChunkOverlap = o.ChunkSize }, "chunk-overlap"},
		{"zero top-k", func(o *Options) { o.TopK = 0 }, "top-k"},
		{"zero embedding dim", func(o *Options) { o.EmbeddingDim = 0 }, "embedding-dim"},
		{"threshold above one", func(o *Options) { o.ConfidenceThreshold = 1.5 }, "confidence-threshold"},
		{"negative threshold", func(o *Options) { o.ConfidenceThreshold = -0.1 }, "confidence-threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptions()
			tt.mutate(o)
			errs := o.Validate()
			require.NotEmpty(t, errs)
			assert.Contains(t, errs[0].Error(), tt.errMsg)
		})
	}
}

func TestComplete_DefaultsCollection(t *testing.T) {
	o := NewOptions()
	o.Collection = ""
	require.NoError(t, o.Complete())
	assert.Equal(t, "seller_docs", o.Collection)
}
