// Package http wires the conversation subsystem's HTTP surface: repositories,
// use cases, handlers and routes, behind a single Router.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"helpdesk/internal/application/conversation/usecases"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/infrastructure/cache"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/email"
	"helpdesk/internal/infrastructure/repository"
	conversationhandlers "helpdesk/internal/interfaces/http/handlers/conversation"
	"helpdesk/internal/interfaces/http/middleware"
	"helpdesk/internal/interfaces/http/routes"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

type Router struct {
	engine *gin.Engine
}

// NewRouter builds the full HTTP stack. redisClient may be nil, which
// disables the unread-total cache.
func NewRouter(gormDB *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	probe := repository.NewSchemaProbe(gormDB, log)
	ticketRepo := repository.NewTicketRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB, probe, log)
	readMarkRepo := repository.NewReadMarkRepository(gormDB, probe, log)
	userRepo := repository.NewUserRepository(gormDB)
	txMgr := db.NewTransactionManager(gormDB)

	var unreadCache usecases.UnreadTotalCache
	if redisClient != nil {
		unreadCache = cache.NewUnreadCache(redisClient)
	}

	var notifier usecases.ReplyNotifier
	if cfg.Email.Enabled {
		notifier = email.NewReplyNotifier(&cfg.Email, log)
	}

	renderer := markdown.NewBodyRenderer()

	postMessageUC := usecases.NewPostMessageUseCase(
		ticketRepo, messageRepo, userRepo, txMgr, unreadCache, notifier, renderer, log)
	listMessagesUC := usecases.NewListMessagesUseCase(
		ticketRepo, messageRepo, userRepo, renderer, log)
	markReadUC := usecases.NewMarkReadUseCase(
		ticketRepo, readMarkRepo, unreadCache, log)
	unreadForTicketUC := usecases.NewUnreadForTicketUseCase(
		ticketRepo, messageRepo, readMarkRepo, log)
	unreadTotalUC := usecases.NewUnreadTotalUseCase(
		messageRepo, unreadCache, log)

	handler := conversationhandlers.NewConversationHandler(
		postMessageUC, listMessagesUC, markReadUC, unreadForTicketUC, unreadTotalUC, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	routes.SetupConversationRoutes(engine, &routes.ConversationRouteConfig{
		ConversationHandler: handler,
		AuthMiddleware:      authMiddleware,
	})

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Handler() http.Handler {
	return r.engine
}
