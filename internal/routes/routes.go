// Package routes defines the API routing configuration.
// It wires repositories into services and services into handlers,
// and groups routes by authentication requirements.
package routes

import (
	"mixbeat/internal/config"
	"mixbeat/internal/handlers"
	"mixbeat/internal/middleware"
	"mixbeat/internal/repositories"
	"mixbeat/internal/repositories/cache"
	"mixbeat/internal/services/chat"
	"mixbeat/internal/services/feed"
	"mixbeat/internal/services/offering"
	"mixbeat/internal/services/pix"
	"mixbeat/internal/services/profile"
	"mixbeat/internal/services/storage"
	"mixbeat/internal/services/topup"
	"mixbeat/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"
)

// Deps holds the external connections routes build the service graph from.
type Deps struct {
	DB      *gorm.DB
	Mongo   *mongo.Client
	MongoDB string
	Cache   *cache.CacheService
	Storage storage.Service
}

// Wiring exposes collaborators the caller needs after route setup,
// such as the payment service driven by the pending-payment sweep.
type Wiring struct {
	WalletRepo repositories.WalletRepository
	Pix        pix.Service
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Deps) Wiring {
	// Repositories
	walletRepo := repositories.NewWalletRepository(deps.DB)
	profileRepo := repositories.NewProfileRepository(deps.DB)
	feedRepo := repositories.NewFeedRepository(deps.Mongo, deps.MongoDB)
	chatRepo := repositories.NewChatRepository(deps.Mongo, deps.MongoDB)
	offeringRepo := repositories.NewOfferingRepository(deps.DB)

	// Services
	walletService := wallet.NewService(walletRepo, deps.Cache)
	gateway := pix.NewHTTPGateway(
		config.GetEnv("PIX_GATEWAY_URL", "https://api.mercadopago.com"),
		config.GetEnv("PIX_ACCESS_TOKEN", ""),
		config.GetDurationEnv("PIX_GATEWAY_TIMEOUT", pix.DefaultGatewayTimeout),
	)
	pixService := pix.NewService(walletRepo, walletService, gateway,
		config.GetDurationEnv("PIX_GATEWAY_TIMEOUT", pix.DefaultGatewayTimeout))
	topupService := topup.NewService(walletService, config.GetEnv("STRIPE_SECRET_KEY", ""))
	profileService := profile.NewService(profileRepo)
	feedService := feed.NewService(feedRepo)
	chatService := chat.NewService(chatRepo, deps.Cache)
	offeringService := offering.NewService(offeringRepo)

	// Handlers
	walletHandler := handlers.NewWalletHandler(walletService, pixService, topupService)
	webhookHandler := handlers.NewWebhookHandler(pixService)
	profileHandler := handlers.NewProfileHandler(profileService)
	feedHandler := handlers.NewFeedHandler(feedService)
	chatHandler := handlers.NewChatHandler(chatService)
	offeringHandler := handlers.NewOfferingHandler(offeringService)
	storageHandler := handlers.NewStorageHandler(deps.Storage)
	healthHandler := handlers.NewHealthHandler(deps.Cache)

	app.Get("/health", healthHandler.Check)

	// Payment gateway notifications carry no user token.
	app.Post("/webhooks/pix", webhookHandler.PixNotification)

	api := app.Group("/api")

	authMiddleware := middleware.NewAuthMiddleware(config.GetEnv("JWT_SECRET", "mixbeat"))

	// The self view must be registered before :uid captures "me".
	api.Get("/profile/me", authMiddleware.Handler, profileHandler.GetMyProfile)
	api.Get("/profile/:uid", profileHandler.GetPublicProfile)

	protected := api.Use(authMiddleware.Handler)

	protected.Post("/profile", profileHandler.SaveProfile)
	setupWalletRoutes(protected, walletHandler)
	setupFeedRoutes(protected, feedHandler)
	setupChatRoutes(protected, chatHandler)
	setupServiceRoutes(protected, offeringHandler)
	setupStorageRoutes(protected, storageHandler)

	return Wiring{WalletRepo: walletRepo, Pix: pixService}
}

func setupWalletRoutes(router fiber.Router, h *handlers.WalletHandler) {
	wallet := router.Group("/wallet")
	wallet.Post("/pix/generate", h.GeneratePix)
	wallet.Post("/topup", h.TopUp)
	wallet.Get("/:userId", h.GetWallet)
	wallet.Get("/:userId/transactions", h.GetTransactions)
}

func setupFeedRoutes(router fiber.Router, h *handlers.FeedHandler) {
	feed := router.Group("/feed")
	feed.Get("/", h.GetFeed)
	feed.Get("/user/:uid", h.GetUserPosts)
	feed.Post("/posts", h.CreatePost)
	feed.Post("/posts/:id/like", h.LikePost)
	feed.Delete("/posts/:id/like", h.UnlikePost)
	feed.Get("/stories", h.GetStories)
	feed.Post("/stories", h.CreateStory)
}

func setupChatRoutes(router fiber.Router, h *handlers.ChatHandler) {
	chat := router.Group("/chat")
	chat.Post("/", h.SendMessage)
	chat.Post("/read", h.MarkRead)
	chat.Get("/:otherUid", h.GetConversation)
}

func setupServiceRoutes(router fiber.Router, h *handlers.OfferingHandler) {
	services := router.Group("/services")
	services.Post("/", h.Register)
	services.Get("/", h.ListAll)
	services.Get("/provider/:uid", h.ListByProvider)
	services.Put("/:id/status", h.UpdateStatus)
	services.Put("/:id", h.Update)
	services.Delete("/:id", h.Delete)
}

func setupStorageRoutes(router fiber.Router, h *handlers.StorageHandler) {
	storage := router.Group("/storage")
	storage.Post("/upload", h.Upload)
	storage.Get("/presign/*", h.Presign)
}
