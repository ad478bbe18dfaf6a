package bootstrap

import (
	"context"
	"fmt"
	"log"

	"db-chat-be/internal/config"
	"db-chat-be/internal/constant"
	"db-chat-be/internal/controller"
	"db-chat-be/internal/pkg/logger"
	"db-chat-be/internal/repository/memory"
	"db-chat-be/internal/repository/unitofwork"
	"db-chat-be/internal/service"
	"db-chat-be/pkg/agent"
	"db-chat-be/pkg/agent/tools"
	"db-chat-be/pkg/conversation"
	"db-chat-be/pkg/dbtool"
	"db-chat-be/pkg/llm/factory"

	pktNats "db-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	UserController    controller.IUserController
	SessionController controller.ISessionController
	ChatController    controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func() error
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, pubSub.Close)

	var relay service.EventRelay
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		relay = natsPub
		c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
	}

	// 3. Pipeline
	llmProvider, err := factory.NewLLMProvider(ctx, factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.OllamaBaseURL,
		APIKey:   cfg.Keys.GoogleGemini,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	threads, err := newThreadStore(ctx, cfg, c)
	if err != nil {
		return nil, err
	}

	inspector := dbtool.NewInspector(nil)
	runner := dbtool.NewQueryRunner(nil, dbtool.QueryOptions{
		Timeout:  cfg.Query.Timeout,
		RowLimit: cfg.Query.RowLimit,
	})

	agentOpts := []agent.ReactOption{
		agent.WithMaxTurns(cfg.Ai.MaxTurns),
		agent.WithAgentTemperature(cfg.Ai.Temperature),
	}
	dbAgent := agent.NewReactAgent(constant.AgentNameDbAssistant, constant.DbAgentPromptV1, llmProvider,
		tools.DatabaseTools(inspector, runner, tools.SchemaCacheOptions{TTL: cfg.Query.SchemaCacheTTL}), agentOpts...)
	graphAgent := agent.NewReactAgent(constant.AgentNameGraphGeneration, constant.GraphAgentPromptV1, llmProvider,
		nil, agentOpts...)

	supervisor := agent.NewSupervisor(llmProvider, []*agent.ReactAgent{dbAgent, graphAgent}, threads, agent.SupervisorOptions{
		Prompt:      constant.SupervisorPromptV1,
		MaxTurns:    cfg.Ai.MaxTurns,
		MaxHandoffs: cfg.Ai.MaxHandoffs,
		Temperature: cfg.Ai.Temperature,
		OutputMode:  agent.OutputMode(cfg.Ai.OutputMode),
	})

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.App.EventTopic,
		relay,
		logger.NewIsolatedLogger("logs/events.log"),
	)

	userService := service.NewUserService(uowFactory, threads, publisherService, sysLogger)
	sessionService := service.NewSessionService(uowFactory, publisherService, sysLogger)
	chatService := service.NewChatService(uowFactory, supervisor, publisherService, sysLogger, service.ChatOptions{
		HistoryWindow: cfg.Chat.HistoryWindow,
		ReplayOrder:   conversation.ParseReplayOrder(cfg.Chat.HistoryOrder),
		AgentTimeout:  cfg.Ai.AgentTimeout,
	})

	// 5. Controllers
	c.UserController = controller.NewUserController(userService)
	c.SessionController = controller.NewSessionController(sessionService)
	c.ChatController = controller.NewChatController(chatService)

	return c, nil
}

func newThreadStore(ctx context.Context, cfg *config.Config, c *Container) (agent.ThreadStore, error) {
	if cfg.App.ThreadStore != "redis" {
		log.Printf("[INFO] Using in-memory thread store (ttl %s)", cfg.App.ThreadTTL)
		return memory.NewThreadRepository(cfg.App.ThreadTTL), nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis thread store: %w", err)
	}
	c.closers = append(c.closers, rdb.Close)

	log.Printf("[INFO] Using Redis thread store (ttl %s)", cfg.App.ThreadTTL)
	return memory.NewRedisThreadRepository(rdb, cfg.App.ThreadTTL), nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			log.Printf("[WARN] Failed to close resource: %v", err)
		}
	}
	_ = c.Logger.Sync()
}
