package biz

import (
	"context"

	"github.com/marketx/seller-assist/internal/model"
)

// refusalAnswer is the deterministic fallback answer for questions outside
// Marketplace X scope.
const refusalAnswer = "I'm sorry, but I don't have enough information to answer this " +
	"question on Marketplace X."

// analyticsAnswer is the fixed handoff answer while the analytics collaborator
// is a stub.
const analyticsAnswer = "Analytics insights are not available yet. Your question has been " +
	"noted for the Marketplace X analytics assistant."

// Agent answers a routed seller question. Every agent returns the unified
// AgentResponse shape.
type Agent interface {
	Run(ctx context.Context, question, sellerID string) (*model.AgentResponse, error)
}

// PolicyAgent answers strict policy and compliance questions.
type PolicyAgent struct {
	answerer *Answerer
}

// NewPolicyAgent creates the policy agent.
func NewPolicyAgent(answerer *Answerer) *PolicyAgent {
	return &PolicyAgent{answerer: answerer}
}

// Run executes the policy answer pipeline. The seller ID is unused for
// policy questions.
func (a *PolicyAgent) Run(ctx context.Context, question, _ string) (*model.AgentResponse, error) {
	return a.answerer.Answer(ctx, question, PolicyProfile())
}

// RecommendationAgent answers growth and listing optimization questions.
type RecommendationAgent struct {
	answerer *Answerer
}

// NewRecommendationAgent creates the recommendation agent.
func NewRecommendationAgent(answerer *Answerer) *RecommendationAgent {
	return &RecommendationAgent{answerer: answerer}
}

// Run executes the recommendation answer pipeline. The seller ID is unused
// for now; a hybrid answer-plus-analytics pipeline may use it later.
func (a *RecommendationAgent) Run(ctx context.Context, question, _ string) (*model.AgentResponse, error) {
	return a.answerer.Answer(ctx, question, RecommendationProfile())
}

// RefusalAgent always refuses with a polite deterministic message.
type RefusalAgent struct{}

// NewRefusalAgent creates the refusal agent.
func NewRefusalAgent() *RefusalAgent {
	return &RefusalAgent{}
}

// Run returns the deterministic refusal response with confidence 0.
func (a *RefusalAgent) Run(_ context.Context, _, _ string) (*model.AgentResponse, error) {
	resp := model.NewAgentResponse(model.IntentRefusal)
	resp.Answer = refusalAnswer
	return resp, nil
}

// AnalyticsAgent is a stub collaborator for metrics and performance
// questions. It acknowledges the question and records the seller it was asked
// for without computing anything.
type AnalyticsAgent struct{}

// NewAnalyticsAgent creates the analytics stub agent.
func NewAnalyticsAgent() *AnalyticsAgent {
	return &AnalyticsAgent{}
}

// Run returns the fixed handoff response.
func (a *AnalyticsAgent) Run(_ context.Context, _, sellerID string) (*model.AgentResponse, error) {
	resp := model.NewAgentResponse(model.IntentAnalytics)
	resp.Answer = analyticsAnswer
	if sellerID != "" {
		resp.Answer += " (seller: " + sellerID + ")"
	}
	return resp, nil
}
