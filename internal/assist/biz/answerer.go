package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/kart-io/logger"

	"github.com/marketx/seller-assist/internal/assist/metrics"
	"github.com/marketx/seller-assist/internal/model"
	"github.com/marketx/seller-assist/pkg/llm"
)

// DefaultConfidenceThreshold is the minimum retrieval confidence required to
// answer from the corpus instead of refusing.
const DefaultConfidenceThreshold = 0.5

const policySystemPrompt = "You are the Marketplace X Policy Assistant.\n" +
	"Your answer MUST be strictly based on the retrieved documentation.\n" +
	"If the documentation does not support the answer, you MUST refuse with:\n" +
	"\"I'm sorry, but I don't have enough information to answer this question based on Marketplace X documentation.\".\n" +
	"Always include citations using the format: [doc_id > section > chunk_id].\n" +
	"Do not invent or speculate."

const policyRefusalAnswer = "I'm sorry, but I don't have enough information to answer " +
	"this question based on Marketplace X documentation."

const recommendationSystemPrompt = "You are the Marketplace X Growth & Listing Assistant.\n" +
	"You can provide recommendations and reasoning, but all factual claims must be grounded " +
	"in the retrieved documentation. Always include citations.\n" +
	"If not enough context is available, refuse politely."

const recommendationRefusalAnswer = "I'm sorry, but I don't have enough information to provide " +
	"a grounded recommendation based on Marketplace X documentation."

// AnswerProfile fixes the persona of a grounded answer pipeline. Policy and
// recommendation pipelines differ only in prompt wording and refusal text.
type AnswerProfile struct {
	Intent        model.Intent
	SystemPrompt  string
	RefusalAnswer string
}

// PolicyProfile is the strict policy/compliance pipeline profile.
func PolicyProfile() AnswerProfile {
	return AnswerProfile{
		Intent:        model.IntentPolicy,
		SystemPrompt:  policySystemPrompt,
		RefusalAnswer: policyRefusalAnswer,
	}
}

// RecommendationProfile is the grounded recommendation pipeline profile.
func RecommendationProfile() AnswerProfile {
	return AnswerProfile{
		Intent:        model.IntentRecommendation,
		SystemPrompt:  recommendationSystemPrompt,
		RefusalAnswer: recommendationRefusalAnswer,
	}
}

// AnswererConfig configures the grounded answer pipelines.
type AnswererConfig struct {
	// TopK is the number of chunks to retrieve per question.
	TopK int
	// ConfidenceThreshold gates answer generation.
	ConfidenceThreshold float64
}

// Answerer runs the retrieve-score-gate-generate pipeline.
type Answerer struct {
	indexer *Indexer
	chat    llm.ChatProvider
	config  *AnswererConfig
}

// NewAnswerer creates an answer pipeline instance.
func NewAnswerer(indexer *Indexer, chat llm.ChatProvider, config *AnswererConfig) *Answerer {
	if config.ConfidenceThreshold == 0 {
		config.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	return &Answerer{
		indexer: indexer,
		chat:    chat,
		config:  config,
	}
}

// Answer retrieves supporting chunks for the question and produces a grounded
// answer under the given profile.
//
// The confidence gate is checked before the completion call: a low-confidence
// retrieval yields a refusal-shaped response without spending a model call.
// The response always carries the computed confidence, including the
// low-confidence values on refusals.
func (a *Answerer) Answer(ctx context.Context, question string, profile AnswerProfile) (*model.AgentResponse, error) {
	chunks, err := a.indexer.Retrieve(ctx, question, a.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	confidence := RetrievalConfidence(chunks)

	if confidence < a.config.ConfidenceThreshold {
		logger.Infow("retrieval confidence below threshold, refusing",
			"intent", string(profile.Intent), "confidence", confidence, "retrieved", len(chunks))
		metrics.GetAssistMetrics().IncCompletionsSkipped()

		resp := model.NewAgentResponse(profile.Intent)
		resp.Answer = profile.RefusalAnswer
		resp.Confidence = confidence
		return resp, nil
	}

	prompt := buildGroundedPrompt(question, chunks)

	answer, err := a.chat.Generate(ctx, prompt, profile.SystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}
	metrics.GetAssistMetrics().IncCompletionCalls()

	resp := model.NewAgentResponse(profile.Intent)
	resp.Answer = strings.TrimSpace(answer)
	resp.Citations = ExtractCitations(chunks)
	resp.Sources = SourceRefs(chunks)
	resp.Confidence = confidence
	return resp, nil
}

// buildGroundedPrompt assembles the question and retrieved documentation into
// the completion prompt. Each chunk is prefixed with its citation so the
// model can cite in the unified format.
func buildGroundedPrompt(question string, chunks []model.ScoredChunk) string {
	var context strings.Builder
	for i, c := range chunks {
		if i > 0 {
			context.WriteString("\n\n")
		}
		context.WriteString(FormatCitation(c))
		context.WriteString("\n")
		context.WriteString(c.Text)
	}

	return fmt.Sprintf("Question:\n%s\n\nRelevant documentation:\n%s\n\nAnswer:",
		question, context.String())
}
