// Package main is the entry point for the Marketplace X Seller Assist Service.
package main

import (
	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/marketx/seller-assist/internal/assist"

	// Register LLM providers.
	_ "github.com/marketx/seller-assist/pkg/llm/ollama"
	_ "github.com/marketx/seller-assist/pkg/llm/openai"
)

func main() {
	assist.NewApp().Run()
}
