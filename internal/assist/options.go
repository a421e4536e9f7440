// Package assist provides the seller assist application.
package assist

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	cacheopts "github.com/marketx/seller-assist/pkg/options/cache"
	corpusopts "github.com/marketx/seller-assist/pkg/options/corpus"
	httpopts "github.com/marketx/seller-assist/pkg/options/http"
	llmopts "github.com/marketx/seller-assist/pkg/options/llm"
	logopts "github.com/marketx/seller-assist/pkg/options/logger"
	milvusopts "github.com/marketx/seller-assist/pkg/options/milvus"
)

// Options contains all seller assist service options.
type Options struct {
	// HTTP contains HTTP server configuration.
	HTTP *httpopts.Options `json:"http" mapstructure:"http"`

	// Log contains logger configuration.
	Log *logopts.Options `json:"log" mapstructure:"log"`

	// Milvus contains Milvus database configuration.
	Milvus *milvusopts.Options `json:"milvus" mapstructure:"milvus"`

	// Embedding contains embedding provider configuration.
	Embedding *llmopts.ProviderOptions `json:"embedding" mapstructure:"embedding"`

	// Chat contains chat provider configuration.
	Chat *llmopts.ProviderOptions `json:"chat" mapstructure:"chat"`

	// Corpus contains documentation corpus and retrieval configuration.
	Corpus *corpusopts.Options `json:"corpus" mapstructure:"corpus"`

	// Cache contains answer cache configuration.
	Cache *cacheopts.Options `json:"cache" mapstructure:"cache"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		HTTP:      httpopts.NewOptions(),
		Log:       logopts.NewOptions(),
		Milvus:    milvusopts.NewOptions(),
		Embedding: llmopts.NewEmbeddingOptions(),
		Chat:      llmopts.NewChatOptions(),
		Corpus:    corpusopts.NewOptions(),
		Cache:     cacheopts.NewOptions(),
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.HTTP.AddFlags(fs)
	o.Log.AddFlags(fs)
	o.Milvus.AddFlags(fs)
	o.Embedding.AddFlags(fs, "embedding.")
	o.Chat.AddFlags(fs, "chat.")
	o.Corpus.AddFlags(fs)
	o.Cache.AddFlags(fs)
}

// Complete completes the options.
func (o *Options) Complete() error {
	if err := o.HTTP.Complete(); err != nil {
		return err
	}
	if err := o.Log.Complete(); err != nil {
		return err
	}
	if err := o.Embedding.Complete(); err != nil {
		return err
	}
	if err := o.Chat.Complete(); err != nil {
		return err
	}
	if err := o.Corpus.Complete(); err != nil {
		return err
	}
	return o.Cache.Complete()
}

// Validate validates the options.
func (o *Options) Validate() error {
	if err := o.Log.Validate(); err != nil {
		return err
	}
	if err := o.HTTP.Validate(); err != nil {
		return err
	}

	var errs []error
	errs = append(errs, o.Milvus.Validate()...)
	errs = append(errs, prefixErrors("embedding", o.Embedding.Validate())...)
	errs = append(errs, prefixErrors("chat", o.Chat.Validate())...)
	errs = append(errs, o.Corpus.Validate()...)
	errs = append(errs, o.Cache.Validate()...)
	if len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, err := range errs {
			msgs = append(msgs, err.Error())
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func prefixErrors(prefix string, errs []error) []error {
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		out = append(out, fmt.Errorf("%s: %w", prefix, err))
	}
	return out
}
