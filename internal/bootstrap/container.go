package bootstrap

import (
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"ai-shopassist-be/internal/config"
	"ai-shopassist-be/internal/controller"
	"ai-shopassist-be/internal/pkg/logger"
	"ai-shopassist-be/internal/service"
	"ai-shopassist-be/pkg/assistant/advisor"
	"ai-shopassist-be/pkg/assistant/intent"
	"ai-shopassist-be/pkg/assistant/query"
	"ai-shopassist-be/pkg/assistant/router"
	"ai-shopassist-be/pkg/assistant/support"
	"ai-shopassist-be/pkg/llm/factory"
	"ai-shopassist-be/pkg/search"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Container struct {
	AssistantController controller.IAssistantController

	SysLogger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := initPipelineLogger()

	// 2. LLM Providers
	llmProvider, _, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Vision uses its own model name; the provider kind is shared
	_, visionProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.VisionModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Vision Provider: %v", err)
	}

	// 3. Product Search
	searchClient := search.NewClient(
		cfg.Search.BaseURL,
		cfg.Keys.RapidAPI,
		cfg.Search.Host,
		cfg.Search.Country,
	)

	// 4. Pipeline Components
	classifier := intent.NewClassifier(llmProvider, pipelineLogger)
	extractor := query.NewExtractor(llmProvider, pipelineLogger)
	adv := advisor.NewAdvisor(llmProvider, pipelineLogger)

	intentRouter := router.NewRouter(
		classifier,
		extractor,
		adv,
		searchClient,
		rand.New(rand.NewSource(time.Now().UnixNano())),
		pipelineLogger,
	)

	textAnalyzer := support.NewTextAnalyzer(llmProvider, pipelineLogger)
	imageAnalyzer := support.NewImageAnalyzer(visionProvider, pipelineLogger)

	// 5. Services
	assistantService := service.NewAssistantService(
		intentRouter,
		textAnalyzer,
		imageAnalyzer,
		searchClient,
	)

	sysLogger.Info("bootstrap", "Container initialized", map[string]interface{}{
		"llm_provider": cfg.Ai.LLMProvider,
		"llm_model":    cfg.Ai.LLMModel,
	})

	// 6. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		SysLogger:           sysLogger,
	}
}

// initPipelineLogger writes LLM pipeline traffic to its own rotated file so
// prompts and fallback decisions stay out of the main application log.
func initPipelineLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "assistant_pipeline.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
		return log.New(os.Stdout, "[PIPELINE] ", log.LstdFlags)
	}
	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // Megabytes
		MaxBackups: 5,
		MaxAge:     30, // Days
		Compress:   true,
	}
	return log.New(rotator, "", log.LstdFlags)
}
