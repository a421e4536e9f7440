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

const classifyPrompt = "Classify the following user query into exactly one category:\n" +
	"- policy: rules, compliance, prohibited items, penalties.\n" +
	"- recommendation: growth, conversion, SEO, listing improvements.\n" +
	"- analytics: metrics, performance, trends, comparisons.\n" +
	"- refusal: requests outside Marketplace X scope.\n\n" +
	"Respond with one word: policy, recommendation, analytics, or refusal.\n\n" +
	"Query: %s"

// Router classifies seller questions and dispatches them to agents.
//
// The agent registry is fixed at construction time; the refusal agent serves
// as the fallback for any intent without a registered agent.
type Router struct {
	classifier llm.ChatProvider
	agents     map[model.Intent]Agent
	fallback   Agent
}

// NewRouter creates a router with an immutable agent registry.
func NewRouter(classifier llm.ChatProvider, answerer *Answerer) *Router {
	fallback := NewRefusalAgent()
	return &Router{
		classifier: classifier,
		agents: map[model.Intent]Agent{
			model.IntentPolicy:         NewPolicyAgent(answerer),
			model.IntentRecommendation: NewRecommendationAgent(answerer),
			model.IntentAnalytics:      NewAnalyticsAgent(),
			model.IntentRefusal:        fallback,
		},
		fallback: fallback,
	}
}

// Classify assigns a routing intent to the question.
//
// The classifier output is trimmed and lowercased before matching. Any label
// outside the four routing categories maps to IntentRefusal with a warning;
// an unrecognized label is never an error.
func (r *Router) Classify(ctx context.Context, question string) (model.Intent, error) {
	result, err := r.classifier.Generate(ctx, fmt.Sprintf(classifyPrompt, question), "")
	if err != nil {
		return "", fmt.Errorf("intent classification failed: %w", err)
	}

	label := model.Intent(strings.ToLower(strings.TrimSpace(result)))
	if !label.Valid() {
		logger.Warnw("classifier returned unexpected label", "label", string(label))
		metrics.GetAssistMetrics().RecordClassification(string(model.IntentRefusal), true)
		return model.IntentRefusal, nil
	}

	metrics.GetAssistMetrics().RecordClassification(string(label), false)
	return label, nil
}

// Route classifies the question and dispatches it to the matching agent.
func (r *Router) Route(ctx context.Context, question, sellerID string) (*model.AgentResponse, error) {
	intent, err := r.Classify(ctx, question)
	if err != nil {
		return nil, err
	}

	agent, ok := r.agents[intent]
	if !ok {
		agent = r.fallback
	}

	logger.Infow("routing question", "intent", string(intent), "seller_id", sellerID)

	return agent.Run(ctx, question, sellerID)
}
