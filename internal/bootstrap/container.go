package bootstrap

import (
	"context"
	"log"
	"time"

	"postcare-ai-be/internal/agent"
	"postcare-ai-be/internal/agent/tool"
	"postcare-ai-be/internal/config"
	"postcare-ai-be/internal/controller"
	"postcare-ai-be/internal/pkg/logger"
	"postcare-ai-be/internal/pkg/recorder"
	"postcare-ai-be/internal/repository/implementation"
	"postcare-ai-be/internal/repository/memory"
	"postcare-ai-be/internal/service"
	"postcare-ai-be/pkg/chunker"
	"postcare-ai-be/pkg/embedding"
	"postcare-ai-be/pkg/llm/factory"
	"postcare-ai-be/pkg/rag"
	"postcare-ai-be/pkg/websearch"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController   controller.IChatController
	CorpusController controller.ICorpusController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared infrastructure
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	interactionLogger := logger.NewIsolatedLogger(cfg.App.InteractionLogPath)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, "text-embedding-3-small")
		log.Printf("[INFO] Using Embedding Provider: OPENAI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Redis (web search cache)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (search caching disabled)", err)
		rdb = nil
	}

	// 5. Repositories
	chunkRepo := implementation.NewCorpusChunkRepository(db)
	patientRepo := implementation.NewPatientRepository(db)
	interactionRepo := implementation.NewInteractionRepository(db)
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Keys.SessionIdleM) * time.Minute)

	// 6. Retrieval and web search
	retriever := rag.NewRetriever(
		embeddingProvider,
		&chunkSearcher{repo: chunkRepo},
		cfg.Retrieval.TopK,
		cfg.Retrieval.Threshold,
	)

	searchChain := websearch.NewFallback(
		websearch.NewTavilyProvider(cfg.Keys.Tavily),
		websearch.NewDuckDuckGoProvider(),
	)
	var searchProvider websearch.Provider = searchChain
	if rdb != nil {
		searchProvider = websearch.NewCachedProvider(searchChain, rdb, 15*time.Minute)
	}

	// 7. Interaction trail
	trail := recorder.NewMulti(
		recorder.NewLogRecorder(interactionLogger),
		recorder.NewDBRecorder(interactionRepo, sysLogger),
	)

	// 8. Agents and routing
	receptionist := agent.NewReceptionist(llmProvider, tool.NewPatientLookup(patientRepo))
	clinical := agent.NewClinical(
		llmProvider,
		tool.NewMedicalRetrieval(retriever),
		tool.NewWebSearch(searchProvider, 3),
	)
	router := agent.NewRouter(receptionist, clinical, trail, time.Duration(cfg.Ai.RoleTimeoutSec)*time.Second)

	// 9. Services
	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	ingestionService := service.NewIngestionService(
		chunkRepo,
		embeddingProvider,
		chunker.New(cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap),
		publisherService,
		sysLogger,
	)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.IngestTopic, ingestionService, sysLogger)
	chatService := service.NewChatService(sessionRepo, router)

	// 10. Controllers
	return &Container{
		ChatController:   controller.NewChatController(chatService),
		CorpusController: controller.NewCorpusController(ingestionService, cfg.App.CorpusDir),
		ConsumerService:  consumerService,
		Logger:           sysLogger,
	}
}
