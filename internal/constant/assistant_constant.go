package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// Intent taxonomy
	IntentGreeting        = "greeting"
	IntentShopping        = "shopping"
	IntentGeneralShopping = "general_shopping"
	IntentUnclear         = "unclear"

	// Normalization sentinels
	FieldNotAvailable = "Not available"
	RatingNotRated    = "Not rated"
	ReasonTopMatch    = "Top matching result"

	// Marketplace search URL used when a raw product carries no direct link.
	// %s slot takes the URL-encoded product title.
	MarketplaceSearchURLTemplate = "https://www.amazon.com/s?k=%s"

	// Top-K bounds per entry point
	ChatRecommendationLimit   = 3
	DirectRecommendationLimit = 5
	CatalogSearchLimit        = 10

	// INTENT CLASSIFICATION (JSON Only)
	IntentClassificationPrompt = `Classify the user's intent for a shopping assistant.

CONVERSATION SO FAR:
%s
NEW MESSAGE: "%s"

Intents:
- greeting: Social pleasantry with no product ask ("hello", "how are you")
- shopping: Specific product identification or purchase intent ("I need wireless headphones under $50")
- general_shopping: Broad or unspecific product talk, store questions, advice seeking ("what do you sell?", "any gift ideas?")
- unclear: You cannot confidently separate the above

Rules:
- If a message mixes a pleasantry with a specific product ask, classify by the PRIMARY concern.
- unclear MUST have confidence below 0.5 and include a clarification question.

JSON only:
{"intent": "greeting|shopping|general_shopping|unclear", "confidence": 0.95, "clarification": "only when unclear"}`

	// SEARCH QUERY EXTRACTION (JSON Only)
	QueryExtractionPrompt = `Extract a product search query from the user's message.

CONVERSATION SO FAR:
%s
MESSAGE: "%s"

Rules:
- searchQuery: a concise phrase a shopper would type into a marketplace search box
- category: optional general product category; when the user is unsure, propose a general category rather than giving up
- Never return an empty searchQuery

JSON only:
{"searchQuery": "wireless headphones", "category": "Electronics"}`

	// SHOPPING ADVICE (JSON Envelope)
	ShoppingAdvicePrompt = `You are a friendly shopping advisor for an online marketplace.

CONVERSATION SO FAR:
%s
MESSAGE: "%s"

Give practical, concise shopping guidance (2-4 sentences). If the user could be
served by a product search, encourage them to name a specific product.

Respond with ONLY this JSON format: {"message": "your advice here"}. No other text.`

	// SUPPORT ANALYSIS - TEXT (JSON Only)
	SupportTextPrompt = `You are a customer support analyst for an online marketplace.

CONVERSATION SO FAR:
%s
PROBLEM DESCRIPTION: "%s"

Analyze the problem and respond with ONLY valid JSON:
{"response": "empathetic guidance for the customer", "requiresHuman": false, "nextSteps": ["step 1", "step 2"]}`

	// SUPPORT ANALYSIS - IMAGE (JSON Only)
	SupportImagePrompt = `You are a customer support analyst. The customer attached a photo of their problem.

CUSTOMER CONTEXT: "%s"

Describe what the image shows and diagnose the issue. Respond with ONLY valid JSON:
{"description": "what the image shows", "issues": ["issue 1"], "suggestions": ["suggestion 1"]}`

	// Default messages substituted when support analysis cannot be parsed
	SupportDefaultResponse       = "Thanks for reaching out. Could you share a few more details about the problem so we can help you faster?"
	SupportInvalidFormatResponse = "We received your request but could not fully process the details. A quick rephrase of the problem would help us assist you."
	SupportImageFailureMessage   = "We couldn't analyze the attached image. Please try a clearer photo or describe the problem in text."

	// Router user-facing messages
	MsgEmptyMessage        = "Please type a message so I can help you."
	MsgQueryExtractionFail = "I couldn't work out what to search for. Could you name the product you're looking for?"
	MsgSearchFail          = "Product search is temporarily unavailable. Please try again in a moment."
	MsgNoProductsFound     = "I couldn't find suitable products for that. Try being more specific about what you need."
	MsgSystemError         = "Sorry, something went wrong while processing your request. Please try again."
	MsgGeneralShoppingFail = "I couldn't put together advice just now. Could you tell me a bit more about what you're shopping for?"

	// Templated success message for product recommendations.
	// Slots: result count, search query.
	MsgRecommendationTemplate = "I found %d great options for \"%s\". Here are my top picks:"
)

// Greeting bank, selected by uniform random index.
var GreetingResponses = []string{
	"Hi there! I'm your shopping assistant. What are you looking for today?",
	"Hello! Great to see you. Need help finding a product?",
	"Hey! I'm here to help you shop. What can I find for you?",
	"Welcome back! Looking for anything in particular today?",
	"Hi! Ask me about any product and I'll hunt down the best options.",
}

// Clarification bank, selected by uniform random index.
var ClarificationResponses = []string{
	"I want to make sure I help with the right thing.",
	"Let me make sure I understand what you need.",
	"I didn't quite catch that, but I'd love to help.",
	"Happy to help once I know a little more.",
}

// GenericClarificationQuestion is used when the classifier flags the message as
// unclear but supplies no question of its own.
const GenericClarificationQuestion = "Could you tell me more about what you're looking for? For example, a product name or a budget."

// CannedAdvice maps fallback keyword groups to canned guidance, checked in order.
type CannedAdvice struct {
	Keywords []string
	Message  string
}

var CannedAdviceBank = []CannedAdvice{
	{
		Keywords: []string{"gift", "present"},
		Message:  "For gifts, think about the person's hobbies first, then set a budget. Gift cards, headphones, and cozy home items are reliable picks. Tell me who it's for and I can suggest something specific.",
	},
	{
		Keywords: []string{"deal", "cheap", "discount", "sale", "budget"},
		Message:  "To find good deals, compare prices across a few listings, check the rating count as well as the stars, and watch for seasonal sales. Name a product and I'll search for well-reviewed options.",
	},
	{
		Keywords: []string{"decide", "choose", "which", "compare"},
		Message:  "When choosing between options, list your top three must-haves, then drop anything that misses one. Reviews that mention your use case are worth more than overall stars. I can compare specific products if you name them.",
	},
}

// GenericAdviceFallback is returned when no canned keyword matches.
const GenericAdviceFallback = "I can help you find products, compare options, or hunt for deals. What kind of item are you interested in?"
