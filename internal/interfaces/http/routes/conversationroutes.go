package routes

import (
	"github.com/gin-gonic/gin"

	conversationhandlers "helpdesk/internal/interfaces/http/handlers/conversation"
	"helpdesk/internal/interfaces/http/middleware"
)

type ConversationRouteConfig struct {
	ConversationHandler *conversationhandlers.ConversationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupConversationRoutes(engine *gin.Engine, config *ConversationRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		tickets.GET("/:id/conversation", config.ConversationHandler.ListConversation)
		tickets.POST("/:id/conversation", config.ConversationHandler.PostMessage)
		tickets.POST("/:id/read", config.ConversationHandler.MarkRead)
		tickets.GET("/:id/unread", config.ConversationHandler.UnreadForTicket)
	}

	conversation := engine.Group("/conversation")
	conversation.Use(config.AuthMiddleware.RequireAuth())
	{
		conversation.GET("/unread", config.ConversationHandler.UnreadTotal)
	}
}
