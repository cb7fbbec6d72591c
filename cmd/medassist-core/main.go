package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/medassist-labs/medassist-core/internal/adapters/driven/ai"
	"github.com/medassist-labs/medassist-core/internal/adapters/driven/memory"
	"github.com/medassist-labs/medassist-core/internal/adapters/driven/pinecone"
	"github.com/medassist-labs/medassist-core/internal/adapters/driven/postgres"
	redisqueue "github.com/medassist-labs/medassist-core/internal/adapters/driven/queue/redis"
	redisadapter "github.com/medassist-labs/medassist-core/internal/adapters/driven/redis"
	"github.com/medassist-labs/medassist-core/internal/core/domain"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driven"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driving"
	"github.com/medassist-labs/medassist-core/internal/core/services"
	"github.com/medassist-labs/medassist-core/internal/loaders"
	"github.com/medassist-labs/medassist-core/internal/postprocessors"
	"github.com/medassist-labs/medassist-core/internal/runtime"
	"github.com/medassist-labs/medassist-core/internal/worker"
	"github.com/redis/go-redis/v9"
)

var version = "dev"

func main() {
	// Get run mode from environment (RUN_MODE) or command line arg
	mode := getEnv("RUN_MODE", "worker")
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	log.Printf("medassist-core %s starting in %s mode", version, mode)

	// Configuration from environment
	indexBackend := getEnv("INDEX_BACKEND", "memory")
	databaseURL := getEnv("DATABASE_URL", "")
	redisURL := getEnv("REDIS_URL", "")

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	// ===== Initialize vector index =====
	var vectorIndex driven.VectorIndex
	switch indexBackend {
	case "pinecone":
		idx, err := pinecone.New(pinecone.Config{
			APIKey: getEnv("PINECONE_API_KEY", ""),
			Cloud:  getEnv("PINECONE_CLOUD", ""),
			Region: getEnv("PINECONE_REGION", ""),
		})
		if err != nil {
			log.Fatalf("Failed to create Pinecone client: %v", err)
		}
		vectorIndex = idx
		log.Println("Using Pinecone vector index")
	case "memory":
		vectorIndex = memory.New()
		log.Println("Using in-memory vector index")
	default:
		log.Fatalf("Unknown index backend: %s (use: pinecone or memory)", indexBackend)
	}

	// ===== Initialize PostgreSQL (optional document registry) =====
	var documentStore driven.DocumentStore
	if databaseURL != "" {
		log.Println("Connecting to PostgreSQL...")
		dbConfig := postgres.Config{
			URL:             databaseURL,
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300)) * time.Second,
			ConnMaxIdleTime: time.Duration(getEnvInt("DB_CONN_MAX_IDLE_SEC", 60)) * time.Second,
		}
		db, err := postgres.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Initialize schema (idempotent)
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		documentStore = postgres.NewDocumentStore(db)
		log.Println("PostgreSQL connected and schema initialized")
	} else {
		log.Println("No DATABASE_URL, document registry disabled")
	}

	// ===== Initialize Redis (optional cache + task queue) =====
	var embeddingCache driven.EmbeddingCache
	var taskQueue driven.TaskQueue
	if redisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		embeddingCache = redisadapter.NewEmbeddingCache(redisClient, 0)
		taskQueue, err = redisqueue.NewQueue(redisClient, fmt.Sprintf("worker-%d", os.Getpid()))
		if err != nil {
			log.Fatalf("Failed to create task queue: %v", err)
		}
		log.Println("Redis connected (embedding cache + task queue)")
	} else {
		log.Println("No REDIS_URL, embedding cache and task queue disabled")
	}

	// ===== AI services =====
	embeddingSettings, synthesizerSettings := aiSettings()

	runtimeConfig := domain.NewRuntimeConfig(indexBackend)
	runtimeServices := runtime.NewServices(runtimeConfig)
	defer runtimeServices.Close()

	aiFactory := ai.NewFactory()

	embeddingService, err := aiFactory.CreateEmbeddingService(embeddingSettings)
	if err != nil {
		log.Fatalf("Failed to create embedding service: %v", err)
	}
	if err := runtimeServices.ValidateAndSetEmbedding(ctx, embeddingService); err != nil {
		log.Printf("Warning: embedding service unavailable: %v (running degraded)", err)
	}

	synthesizerService, err := aiFactory.CreateSynthesizerService(synthesizerSettings)
	if err != nil {
		log.Fatalf("Failed to create synthesizer service: %v", err)
	}
	if err := runtimeServices.ValidateAndSetSynthesizer(ctx, synthesizerService); err != nil {
		log.Printf("Warning: synthesizer service unavailable: %v (running degraded)", err)
	}

	// ===== Registries and pipeline =====
	loaderRegistry := loaders.DefaultRegistry()
	pipeline := postprocessors.DefaultPipeline()
	indexSettings := domain.DefaultIndexSettings()

	// ===== Services (core business logic) =====
	ingestService := services.NewIngestService(services.IngestServiceConfig{
		LoaderRegistry: loaderRegistry,
		Pipeline:       pipeline,
		VectorIndex:    vectorIndex,
		DocumentStore:  documentStore,
		Cache:          embeddingCache,
		Services:       runtimeServices,
		IndexSettings:  indexSettings,
		Logger:         slog.Default(),
	})
	chatService := services.NewChatService(services.ChatServiceConfig{
		VectorIndex:   vectorIndex,
		Services:      runtimeServices,
		IndexSettings: indexSettings,
		Logger:        slog.Default(),
	})

	// Log startup configuration
	log.Printf("Runtime config: index_backend=%s, embedding=%t, synthesis=%t",
		runtimeConfig.IndexBackend,
		runtimeConfig.EmbeddingAvailable(),
		runtimeConfig.SynthesisAvailable())

	switch mode {
	case "worker":
		// Worker mode: process queued ingestion tasks until shutdown
		if taskQueue == nil {
			log.Fatal("Worker mode requires REDIS_URL")
		}
		runWorker(ctx, taskQueue, ingestService)

	case "ingest":
		// One-shot synchronous ingestion of a local file
		if len(os.Args) < 3 {
			log.Fatal("Usage: medassist-core ingest <file>")
		}
		path := os.Args[2]
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}
		result, err := ingestService.Ingest(ctx, filepath.Base(path), data)
		if err != nil {
			log.Fatalf("Ingestion failed: %v", err)
		}
		log.Printf("Ingested %s: document_id=%s pages=%d chunks=%d",
			result.Filename, result.DocumentID, result.PageCount, result.ChunkCount)

	case "ask":
		// One-shot question answering
		if len(os.Args) < 3 {
			log.Fatal("Usage: medassist-core ask <question>")
		}
		question := strings.Join(os.Args[2:], " ")
		answer := chatService.Answer(ctx, question)
		fmt.Println(answer.Text)
		log.Printf("Answered from %s in %s", answer.Source, answer.Took)

	default:
		log.Fatalf("Unknown mode: %s (use: worker, ingest, or ask)", mode)
	}
}

// aiSettings builds the AI provider settings from the environment.
// Defaults to Gemini; an empty API key leaves the service unconfigured
// and the chatbot runs on the fallback knowledge base.
func aiSettings() (*domain.EmbeddingSettings, *domain.SynthesizerSettings) {
	provider := getEnv("AI_PROVIDER", "gemini")

	switch provider {
	case "openai":
		apiKey := getEnv("OPENAI_API_KEY", "")
		embedding := &domain.EmbeddingSettings{
			Provider:   domain.AIProviderOpenAI,
			APIKey:     apiKey,
			Model:      getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			Dimensions: domain.DefaultIndexSettings().Dimension,
		}
		synthesizer := &domain.SynthesizerSettings{
			Provider: domain.AIProviderOpenAI,
			APIKey:   apiKey,
			Model:    getEnv("SYNTHESIS_MODEL", "gpt-4o-mini"),
		}
		return embedding, synthesizer

	default:
		apiKey := getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", ""))
		embedding := domain.DefaultEmbeddingSettings(apiKey)
		embedding.Model = getEnv("EMBEDDING_MODEL", embedding.Model)
		synthesizer := domain.DefaultSynthesizerSettings(apiKey)
		synthesizer.Model = getEnv("SYNTHESIS_MODEL", synthesizer.Model)
		return embedding, synthesizer
	}
}

// runWorker starts the background ingestion worker and blocks until
// the context is cancelled.
func runWorker(ctx context.Context, taskQueue driven.TaskQueue, ingestService driving.IngestService) {
	w := worker.New(worker.Config{
		TaskQueue:      taskQueue,
		IngestService:  ingestService,
		Logger:         slog.Default(),
		Concurrency:    getEnvInt("WORKER_CONCURRENCY", 2),
		DequeueTimeout: getEnvInt("WORKER_DEQUEUE_TIMEOUT", 5),
	})

	if err := w.Start(ctx); err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}
	log.Println("Worker started, processing ingest_document tasks...")

	<-ctx.Done()

	log.Println("Stopping worker...")
	w.Stop()
	log.Println("Worker stopped")
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
