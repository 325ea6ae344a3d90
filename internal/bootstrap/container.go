package bootstrap

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"textrec-be/internal/config"
	"textrec-be/internal/controller"
	"textrec-be/internal/pkg/logger"
	"textrec-be/internal/repository/contract"
	"textrec-be/internal/repository/implementation"
	"textrec-be/internal/repository/memory"
	"textrec-be/internal/service"
	"textrec-be/pkg/grammar"
	"textrec-be/pkg/llm"
	"textrec-be/pkg/llm/factory"
	"textrec-be/pkg/ocr"

	pktNats "textrec-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RecognitionController controller.IRecognitionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

// NewContainer wires everything together. db may be nil when
// STORE_DRIVER is not "postgres".
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Document Store based on Config
	var documentRepo contract.DocumentRepository
	switch cfg.Store.Driver {
	case "postgres":
		if db == nil {
			log.Fatalf("[FATAL] STORE_DRIVER=postgres requires DB_CONNECTION_STRING")
		}
		documentRepo = implementation.NewDocumentRepository(db)
		log.Printf("[INFO] Using Document Store: POSTGRES")
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		documentRepo = implementation.NewDocumentRedisRepository(rdb)
		log.Printf("[INFO] Using Document Store: REDIS")
	default:
		documentRepo = memory.NewDocumentRepository()
		log.Printf("[INFO] Using Document Store: MEMORY")
	}

	// 4. OCR Provider based on Config
	var ocrProvider ocr.Provider
	if cfg.Ocr.Provider == "tesseract" {
		ocrProvider = ocr.NewTesseractProvider(strings.Split(cfg.Ocr.TesseractLangs, ","))
		log.Printf("[INFO] Using OCR Provider: TESSERACT (%s)", cfg.Ocr.TesseractLangs)
	} else {
		ocrProvider = ocr.NewVisionProvider(cfg.Keys.GoogleVision)
		log.Printf("[INFO] Using OCR Provider: GOOGLE VISION")
	}

	// 5. Grammar Checker
	grammarChecker := grammar.NewClient(
		cfg.Grammar.BaseURL,
		time.Duration(cfg.Grammar.TimeoutSeconds)*time.Second,
	)

	// 6. LLM Provider based on Config. A missing key is not fatal: the
	// assistant degrades to its local fallback answers.
	var llmProvider llm.LLMProvider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		if errors.Is(err, factory.ErrMissingAPIKey) {
			log.Printf("[WARN] LLM Provider unconfigured: %v. Assistant will use local fallback answers", err)
			llmProvider = nil
		} else {
			log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
		}
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// 7. NATS (optional, best effort)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 8. Services
	publisherService := service.NewPublisherService(cfg.Keys.RecognitionTopic, pubSub)

	auditLogger := logger.NewIsolatedLogger("logs/recognition.log")
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.RecognitionTopic, auditLogger, natsPub)

	recognitionService := service.NewRecognitionService(
		ocrProvider,
		grammarChecker,
		cfg.Grammar.Locale,
		documentRepo,
		publisherService,
		sysLogger,
	)
	assistantService := service.NewAssistantService(documentRepo, llmProvider, sysLogger)

	// 9. Controllers
	recognitionController := controller.NewRecognitionController(recognitionService, assistantService)

	return &Container{
		RecognitionController: recognitionController,
		ConsumerService:       consumerService,
	}
}
