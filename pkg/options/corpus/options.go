// Package corpus provides documentation corpus and retrieval configuration options.
package corpus

import (
	"fmt"

	"github.com/marketx/seller-assist/pkg/options"
	"github.com/spf13/pflag"
)

var _ options.IOptions = (*Options)(nil)

// Options contains corpus ingestion and retrieval configuration.
type Options struct {
	// DocsDir is the directory holding the seller documentation markdown files.
	DocsDir string `json:"docs-dir" mapstructure:"docs-dir"`

	// ChunkSize is the size of text chunks in characters.
	ChunkSize int `json:"chunk-size" mapstructure:"chunk-size"`

	// ChunkOverlap is the overlap between consecutive chunks in characters.
	ChunkOverlap int `json:"chunk-overlap" mapstructure:"chunk-overlap"`

	// TopK is the number of results to return from similarity search.
	TopK int `json:"top-k" mapstructure:"top-k"`

	// Collection is the name of the Milvus collection.
	Collection string `json:"collection" mapstructure:"collection"`

	// EmbeddingDim is the dimension of embedding vectors.
	EmbeddingDim int `json:"embedding-dim" mapstructure:"embedding-dim"`

	// ConfidenceThreshold is the minimum retrieval confidence required to
	// answer from the corpus instead of refusing.
	ConfidenceThreshold float64 `json:"confidence-threshold" mapstructure:"confidence-threshold"`

	// BuildOnStartup rebuilds the index from the docs directory at startup
	// when the collection is missing or empty.
	BuildOnStartup bool `json:"build-on-startup" mapstructure:"build-on-startup"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		DocsDir:             "data/docs",
		ChunkSize:           600,
		ChunkOverlap:        100,
		TopK:                4,
		Collection:          "seller_docs",
		EmbeddingDim:        768, // nomic-embed-text dimension
		ConfidenceThreshold: 0.5,
		BuildOnStartup:      true,
	}
}

// AddFlags adds flags for corpus options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.DocsDir, options.Join(prefixes...)+"corpus.docs-dir", o.DocsDir, "Directory holding seller documentation markdown files.")
	fs.IntVar(&o.ChunkSize, options.Join(prefixes...)+"corpus.chunk-size", o.ChunkSize, "Size of text chunks.")
	fs.IntVar(&o.ChunkOverlap, options.Join(prefixes...)+"corpus.chunk-overlap", o.ChunkOverlap, "Overlap between chunks.")
	fs.IntVar(&o.TopK, options.Join(prefixes...)+"corpus.top-k", o.TopK, "Number of results from similarity search.")
	fs.StringVar(&o.Collection, options.Join(prefixes...)+"corpus.collection", o.Collection, "Milvus collection name.")
	fs.IntVar(&o.EmbeddingDim, options.Join(prefixes...)+"corpus.embedding-dim", o.EmbeddingDim, "Embedding vector dimension.")
	fs.Float64Var(&o.ConfidenceThreshold, options.Join(prefixes...)+"corpus.confidence-threshold", o.ConfidenceThreshold, "Minimum retrieval confidence required to answer.")
	fs.BoolVar(&o.BuildOnStartup, options.Join(prefixes...)+"corpus.build-on-startup", o.BuildOnStartup, "Build the index at startup when missing or empty.")
}

// Validate validates the corpus options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.DocsDir == "" {
		errs = append(errs, fmt.Errorf("docs-dir is required"))
	}
	if o.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk-size must be positive"))
	}
	if o.ChunkOverlap < 0 || o.ChunkOverlap >= o.ChunkSize {
		errs = append(errs, fmt.Errorf("chunk-overlap must be in [0, chunk-size)"))
	}
	if o.TopK <= 0 {
		errs = append(errs, fmt.Errorf("top-k must be positive"))
	}
	if o.EmbeddingDim <= 0 {
		errs = append(errs, fmt.Errorf("embedding-dim must be positive"))
	}
	if o.ConfidenceThreshold < 0 || o.ConfidenceThreshold > 1 {
		errs = append(errs, fmt.Errorf("confidence-threshold must be in [0, 1]"))
	}
	return errs
}

// Complete completes the corpus options with defaults.
func (o *Options) Complete() error {
	if o.Collection == "" {
		o.Collection = "seller_docs"
	}
	return nil
}
