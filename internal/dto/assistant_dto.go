package dto

import "ai-shopassist-be/pkg/product"

// ChatRequest is the conversational entry point. ConversationHistory is
// intentionally loose: clients send arbitrary shapes and the sanitizer
// normalizes whatever arrives. Message is checked by the pipeline itself so
// an empty value still produces the structured invalid-input envelope.
type ChatRequest struct {
	Message             string      `json:"message"`
	ConversationHistory interface{} `json:"conversationHistory,omitempty"`
}

type RecommendationsRequest struct {
	Message             string      `json:"message"`
	ConversationHistory interface{} `json:"conversationHistory,omitempty"`
}

type SupportRequest struct {
	Message             string      `json:"message" validate:"required"`
	ConversationHistory interface{} `json:"conversationHistory,omitempty"`
}

type SupportImageRequest struct {
	Message             string      `json:"message"`
	Image               string      `json:"image" validate:"required"`
	ConversationHistory interface{} `json:"conversationHistory,omitempty"`
}

type CatalogSearchResponse struct {
	Query    string            `json:"query"`
	Count    int               `json:"count"`
	Products []product.Product `json:"products"`
}
