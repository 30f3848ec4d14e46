package service

import (
	"context"
	"errors"

	"ai-shopassist-be/internal/constant"
	"ai-shopassist-be/internal/dto"
	"ai-shopassist-be/internal/pkg/apperror"
	"ai-shopassist-be/pkg/assistant/history"
	"ai-shopassist-be/pkg/assistant/router"
	"ai-shopassist-be/pkg/assistant/support"
	"ai-shopassist-be/pkg/product"
	"ai-shopassist-be/pkg/search"
)

// IAssistantService defines the assistant service interface
type IAssistantService interface {
	Chat(ctx context.Context, request *dto.ChatRequest) *router.Envelope
	Recommend(ctx context.Context, request *dto.RecommendationsRequest) *router.Envelope
	AnalyzeSupport(ctx context.Context, request *dto.SupportRequest) *support.Report
	AnalyzeSupportImage(ctx context.Context, request *dto.SupportImageRequest) *support.Report
	SearchCatalog(ctx context.Context, query string) (*dto.CatalogSearchResponse, error)
}

type assistantService struct {
	router        *router.Router
	textAnalyzer  support.Analyzer
	imageAnalyzer support.Analyzer
	searcher      search.ProductSearcher
}

func NewAssistantService(
	r *router.Router,
	textAnalyzer support.Analyzer,
	imageAnalyzer support.Analyzer,
	searcher search.ProductSearcher,
) IAssistantService {
	return &assistantService{
		router:        r,
		textAnalyzer:  textAnalyzer,
		imageAnalyzer: imageAnalyzer,
		searcher:      searcher,
	}
}

func (s *assistantService) Chat(ctx context.Context, request *dto.ChatRequest) *router.Envelope {
	turns := history.Sanitize(request.ConversationHistory)
	return s.router.Route(ctx, request.Message, turns)
}

func (s *assistantService) Recommend(ctx context.Context, request *dto.RecommendationsRequest) *router.Envelope {
	turns := history.Sanitize(request.ConversationHistory)
	return s.router.Recommend(ctx, request.Message, turns)
}

func (s *assistantService) AnalyzeSupport(ctx context.Context, request *dto.SupportRequest) *support.Report {
	return s.textAnalyzer.Analyze(ctx, support.Input{
		Message: request.Message,
		History: history.Sanitize(request.ConversationHistory),
	})
}

func (s *assistantService) AnalyzeSupportImage(ctx context.Context, request *dto.SupportImageRequest) *support.Report {
	return s.imageAnalyzer.Analyze(ctx, support.Input{
		Message: request.Message,
		Image:   request.Image,
		History: history.Sanitize(request.ConversationHistory),
	})
}

// SearchCatalog is a direct keyword lookup that bypasses the LLM pipeline.
func (s *assistantService) SearchCatalog(ctx context.Context, query string) (*dto.CatalogSearchResponse, error) {
	raw, err := s.searcher.Search(ctx, query)
	if err != nil {
		if errors.Is(err, search.ErrNoProducts) {
			return nil, apperror.New(apperror.CodeNoProductsFound, constant.MsgNoProductsFound)
		}
		return nil, apperror.Wrap(apperror.CodeSearchFailed, constant.MsgSearchFail, err)
	}

	products, err := product.NormalizeTop(raw, constant.CatalogSearchLimit)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeNoProductsFound, constant.MsgNoProductsFound, err)
	}

	return &dto.CatalogSearchResponse{
		Query:    query,
		Count:    len(products),
		Products: products,
	}, nil
}
