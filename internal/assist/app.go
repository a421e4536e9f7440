package assist

import (
	"github.com/marketx/seller-assist/pkg/app"
)

// Name is the name of the application.
const Name = "seller-assist"

const description = `Marketplace X Seller Assist Service

The grounded question answering service for Marketplace X seller documentation.

This server provides:
  - Markdown documentation ingestion and chunk indexing with vector embeddings
  - Intent classification routing questions to specialized agents
  - Confidence gated answers grounded in the documentation with citations`

// NewApp creates the seller assist application instance.
func NewApp() *app.App {
	opts := NewOptions()

	return app.NewApp(
		app.WithName(Name),
		app.WithShortDescription("Marketplace X seller documentation assistant"),
		app.WithDescription(description),
		app.WithOptions(opts),
		app.WithRunFunc(func() error {
			return Run(opts)
		}),
	)
}

// Run wires the service from the given options and runs it until terminated.
func Run(opts *Options) error {
	server, err := NewServer(opts)
	if err != nil {
		return err
	}
	return server.Run()
}
