package bootstrap

import (
	"context"
	"log"

	"uni-chat-be/internal/config"
	"uni-chat-be/internal/controller"
	"uni-chat-be/internal/handler"
	"uni-chat-be/internal/pkg/logger"
	"uni-chat-be/internal/pkg/mailer"
	"uni-chat-be/internal/repository/unitofwork"
	"uni-chat-be/internal/service"
	"uni-chat-be/internal/websocket"
	"uni-chat-be/pkg/prompt"
	"uni-chat-be/pkg/signal"

	pktNats "uni-chat-be/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	UserController        controller.IUserController
	ChatController        controller.IChatController
	IntegrationController controller.IIntegrationController
	OAuthController       controller.IOAuthController

	// WebSockets & Push
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub

	// Background Services (Exposed for main.go to run)
	NotificationService *service.NotificationService
	SignalBus           *signal.Bus
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
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

	// In-process refresh signal bus
	signalBus := signal.NewBus()

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Prompt service client
	promptClient := prompt.NewClient(cfg.Prompt.BaseURL)

	// 3. Services
	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	userService := service.NewUserService(uowFactory, natsPub)
	chatService := service.NewChatService(uowFactory, promptClient, signalBus, natsPub, sysLogger)
	oauthService := service.NewOAuthService(uowFactory, cfg)
	integrationService := service.NewIntegrationService(uowFactory, oauthService, signalBus, natsPub, sysLogger)

	notifService := service.NewNotificationService(signalBus, natsSub, wsHub, wsLogger)

	// Handler
	streamHandler := handler.NewStreamHandler(wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:        controller.NewAuthController(authService),
		UserController:        controller.NewUserController(userService),
		ChatController:        controller.NewChatController(chatService),
		IntegrationController: controller.NewIntegrationController(integrationService),
		OAuthController:       controller.NewOAuthController(oauthService, integrationService),

		StreamHandler: streamHandler,
		WebSocketHub:  wsHub,

		NotificationService: notifService,
		SignalBus:           signalBus,
	}
}
