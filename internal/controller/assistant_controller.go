package controller

import (
	"ai-shopassist-be/internal/dto"
	"ai-shopassist-be/internal/pkg/apperror"
	"ai-shopassist-be/internal/pkg/serverutils"
	"ai-shopassist-be/internal/service"
	"ai-shopassist-be/pkg/assistant/router"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Recommendations(ctx *fiber.Ctx) error
	Support(ctx *fiber.Ctx) error
	SupportImage(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("chat", c.Chat)
	h.Post("recommendations", c.Recommendations)
	h.Post("support", c.Support)
	h.Post("support/image", c.SupportImage)
	h.Get("search", c.Search)
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	env := c.assistantService.Chat(ctx.Context(), &req)
	return ctx.Status(statusForEnvelope(env)).JSON(env)
}

func (c *assistantController) Recommendations(ctx *fiber.Ctx) error {
	var req dto.RecommendationsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	env := c.assistantService.Recommend(ctx.Context(), &req)
	return ctx.Status(statusForEnvelope(env)).JSON(env)
}

func (c *assistantController) Support(ctx *fiber.Ctx) error {
	var req dto.SupportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	report := c.assistantService.AnalyzeSupport(ctx.Context(), &req)
	return ctx.JSON(report)
}

func (c *assistantController) SupportImage(ctx *fiber.Ctx) error {
	var req dto.SupportImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	report := c.assistantService.AnalyzeSupportImage(ctx.Context(), &req)
	if !report.Success {
		return ctx.Status(fiber.StatusBadGateway).JSON(report)
	}
	return ctx.JSON(report)
}

func (c *assistantController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter 'q' is required")
	}

	res, err := c.assistantService.SearchCatalog(ctx.Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search catalog", res))
}

// statusForEnvelope maps pipeline terminal states to HTTP statuses. The body
// is always the envelope itself; the status only mirrors its error code.
func statusForEnvelope(env *router.Envelope) int {
	switch env.Error {
	case "":
		return fiber.StatusOK
	case string(apperror.CodeInvalidInput):
		return fiber.StatusBadRequest
	case string(apperror.CodeNoProductsFound):
		return fiber.StatusNotFound
	case string(apperror.CodeSearchFailed),
		string(apperror.CodeQueryExtractionFailed),
		string(apperror.CodeIntentDetectionFailed),
		string(apperror.CodeGeneralShoppingFailed),
		string(apperror.CodeCapabilityFailure):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
