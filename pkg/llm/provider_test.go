package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name string
}

func (s *stubProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	return make([][]float32, len(texts)), nil
}

func (s *stubProvider) EmbedSingle(context.Context, string) ([]float32, error) {
	return nil, nil
}

func (s *stubProvider) Chat(context.Context, []Message) (string, error) {
	return "", nil
}

func (s *stubProvider) Generate(context.Context, string, string) (string, error) {
	return "", nil
}

func (s *stubProvider) Name() string { return s.name }

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider("no-such-provider", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")

	_, err = NewEmbeddingProvider("no-such-provider", nil)
	require.Error(t, err)

	_, err = NewChatProvider("no-such-provider", nil)
	require.Error(t, err)
}

func TestRegisterAndResolve(t *testing.T) {
	RegisterProvider("test-full", func(map[string]any) (Provider, error) {
		return &stubProvider{name: "full"}, nil
	})

	p, err := NewProvider("test-full", nil)
	require.NoError(t, err)
	assert.Equal(t, "full", p.Name())

	// A full provider also resolves as embedding and chat provider.
	ep, err := NewEmbeddingProvider("test-full", nil)
	require.NoError(t, err)
	assert.Equal(t, "full", ep.Name())

	cp, err := NewChatProvider("test-full", nil)
	require.NoError(t, err)
	assert.Equal(t, "full", cp.Name())
}

func TestDedicatedFactoryPrecedence(t *testing.T) {
	RegisterProvider("test-prec", func(map[string]any) (Provider, error) {
		return &stubProvider{name: "full"}, nil
	})
	RegisterEmbeddingProvider("test-prec", func(map[string]any) (EmbeddingProvider, error) {
		return &stubProvider{name: "dedicated-embed"}, nil
	})
	RegisterChatProvider("test-prec", func(map[string]any) (ChatProvider, error) {
		return &stubProvider{name: "dedicated-chat"}, nil
	})

	ep, err := NewEmbeddingProvider("test-prec", nil)
	require.NoError(t, err)
	assert.Equal(t, "dedicated-embed", ep.Name())

	cp, err := NewChatProvider("test-prec", nil)
	require.NoError(t, err)
	assert.Equal(t, "dedicated-chat", cp.Name())
}

func TestListProviders(t *testing.T) {
	RegisterProvider("test-list", func(map[string]any) (Provider, error) {
		return &stubProvider{name: "listed"}, nil
	})

	names := ListProviders()
	assert.Contains(t, names, "test-list")
}
