package router

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"ai-shopassist-be/internal/constant"
	"ai-shopassist-be/internal/pkg/apperror"
	"ai-shopassist-be/pkg/assistant/advisor"
	"ai-shopassist-be/pkg/assistant/history"
	"ai-shopassist-be/pkg/assistant/intent"
	"ai-shopassist-be/pkg/assistant/query"
	"ai-shopassist-be/pkg/product"
	"ai-shopassist-be/pkg/search"
)

// Envelope is the uniform response returned by every branch. Message is
// always present; exactly one of Success:true / Error describes the terminal
// state of a branch.
type Envelope struct {
	Intent                string            `json:"intent,omitempty"`
	Success               bool              `json:"success,omitempty"`
	Error                 string            `json:"error,omitempty"`
	Message               string            `json:"message"`
	Details               string            `json:"details,omitempty"`
	Recommendations       []product.Product `json:"recommendations,omitempty"`
	Query                 string            `json:"query,omitempty"`
	RequiresClarification bool              `json:"requiresClarification,omitempty"`
	Clarification         string            `json:"clarification,omitempty"`
}

// Router dispatches a sanitized request through the intent pipeline. The
// pipeline is parameterized (classification optional, top-K bound) so the
// chat and recommendations entry points share one implementation.
type Router struct {
	classifier *intent.Classifier
	extractor  *query.Extractor
	advisor    *advisor.Advisor
	searcher   search.ProductSearcher
	rng        *rand.Rand
	logger     *log.Logger
}

// NewRouter wires the pipeline. The rand source is injected so tests can
// supply a deterministic one and assert exact greeting/clarification picks.
func NewRouter(
	classifier *intent.Classifier,
	extractor *query.Extractor,
	adv *advisor.Advisor,
	searcher search.ProductSearcher,
	rng *rand.Rand,
	logger *log.Logger,
) *Router {
	return &Router{
		classifier: classifier,
		extractor:  extractor,
		advisor:    adv,
		searcher:   searcher,
		rng:        rng,
		logger:     logger,
	}
}

type pipelineOptions struct {
	skipClassification bool
	topK               int
}

// Route runs the full conversational pipeline: classify, branch, top-3.
func (r *Router) Route(ctx context.Context, message string, turns []history.Turn) *Envelope {
	return r.execute(ctx, message, turns, pipelineOptions{
		topK: constant.ChatRecommendationLimit,
	})
}

// Recommend skips classification and always executes the shopping branch
// with a top-5 bound, for callers who already know the user wants products.
func (r *Router) Recommend(ctx context.Context, message string, turns []history.Turn) *Envelope {
	return r.execute(ctx, message, turns, pipelineOptions{
		skipClassification: true,
		topK:               constant.DirectRecommendationLimit,
	})
}

func (r *Router) execute(ctx context.Context, message string, turns []history.Turn, opts pipelineOptions) (env *Envelope) {
	// Outermost boundary: no panic may reach the transport layer
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Printf("[ERROR] Pipeline panic recovered: %v", rec)
			env = &Envelope{
				Error:   string(apperror.CodeSystemError),
				Message: constant.MsgSystemError,
				Details: fmt.Sprintf("%v", rec),
			}
		}
	}()

	if strings.TrimSpace(message) == "" {
		return &Envelope{
			Error:   string(apperror.CodeInvalidInput),
			Message: constant.MsgEmptyMessage,
		}
	}

	detected := constant.IntentShopping
	var classified *intent.Result
	if !opts.skipClassification {
		// Classification carries its own fallback and cannot fail
		classified = r.classifier.Classify(ctx, message, turns)
		detected = classified.Intent
	}

	switch detected {
	case constant.IntentGreeting:
		return r.handleGreeting()

	case constant.IntentShopping:
		return r.handleShopping(ctx, message, turns, opts.topK)

	case constant.IntentGeneralShopping:
		return r.handleGeneralShopping(ctx, message, turns)

	default: // unclear
		return r.handleUnclear(classified)
	}
}

func (r *Router) handleGreeting() *Envelope {
	return &Envelope{
		Intent:  constant.IntentGreeting,
		Success: true,
		Message: r.pick(constant.GreetingResponses, "Hi there! How can I help you shop today?"),
	}
}

func (r *Router) handleShopping(ctx context.Context, message string, turns []history.Turn, topK int) *Envelope {
	q, err := r.extractor.Extract(ctx, message, turns)
	if err != nil {
		r.logger.Printf("[ROUTER] Query extraction failed: %v", err)
		return &Envelope{
			Intent:  constant.IntentShopping,
			Error:   string(apperror.CodeQueryExtractionFailed),
			Message: constant.MsgQueryExtractionFail,
			Details: err.Error(),
		}
	}

	raw, err := r.searcher.Search(ctx, q.SearchQuery)
	if err != nil {
		if errors.Is(err, search.ErrNoProducts) {
			return r.noProductsEnvelope(q.SearchQuery, err)
		}
		r.logger.Printf("[ROUTER] Product search failed: %v", err)
		return &Envelope{
			Intent:  constant.IntentShopping,
			Error:   string(apperror.CodeSearchFailed),
			Message: constant.MsgSearchFail,
			Details: err.Error(),
		}
	}

	recommendations, err := product.NormalizeTop(raw, topK)
	if err != nil {
		return r.noProductsEnvelope(q.SearchQuery, err)
	}

	return &Envelope{
		Intent:          constant.IntentShopping,
		Success:         true,
		Message:         fmt.Sprintf(constant.MsgRecommendationTemplate, len(recommendations), q.SearchQuery),
		Recommendations: recommendations,
		Query:           q.SearchQuery,
	}
}

func (r *Router) noProductsEnvelope(searchQuery string, err error) *Envelope {
	r.logger.Printf("[ROUTER] No usable products for %q: %v", searchQuery, err)
	return &Envelope{
		Intent:  constant.IntentShopping,
		Error:   string(apperror.CodeNoProductsFound),
		Message: constant.MsgNoProductsFound,
		Query:   searchQuery,
		Details: err.Error(),
	}
}

func (r *Router) handleGeneralShopping(ctx context.Context, message string, turns []history.Turn) *Envelope {
	// The advisor has internal fallbacks and always yields a usable message
	return &Envelope{
		Intent:  constant.IntentGeneralShopping,
		Success: true,
		Message: r.advisor.Advise(ctx, message, turns),
	}
}

func (r *Router) handleUnclear(classified *intent.Result) *Envelope {
	clarification := constant.GenericClarificationQuestion
	if classified != nil && classified.Clarification != "" {
		clarification = classified.Clarification
	}

	return &Envelope{
		Intent:                constant.IntentUnclear,
		Success:               true,
		Message:               r.pick(constant.ClarificationResponses, "Let me make sure I understand what you need.") + " " + clarification,
		RequiresClarification: true,
		Clarification:         clarification,
	}
}

// pick draws a uniform-random element; an empty bank degrades to the
// hardcoded fallback rather than erroring.
func (r *Router) pick(bank []string, fallback string) string {
	if len(bank) == 0 {
		return fallback
	}
	return bank[r.rng.Intn(len(bank))]
}
