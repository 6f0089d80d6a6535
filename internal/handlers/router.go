package handlers

import (
	"net/http"
	"time"

	"roomhub/internal/auth"
	"roomhub/internal/config"
	"roomhub/internal/services"
	ws "roomhub/internal/websocket"
	"roomhub/pkg/logger"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route onto a gin engine with the ambient
// middleware stack.
func NewRouter(
	cfg *config.Config,
	authService *auth.Service,
	roomService *services.RoomService,
	messageService *services.MessageService,
	userService *services.UserService,
	hubManager *ws.Manager,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	r.Use(cors.Default())

	if cfg.Server.RatePerSecond > 0 {
		store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  time.Second,
			Limit: uint(cfg.Server.RatePerSecond),
		})
		r.Use(ratelimit.RateLimiter(store, &ratelimit.Options{
			ErrorHandler: rateLimitErrorHandler,
			KeyFunc:      func(c *gin.Context) string { return c.ClientIP() },
		}))
	}

	authHandlers := NewAuthHandlers(authService, cfg)
	roomHandlers := NewRoomHandlers(roomService, hubManager)
	messageHandlers := NewMessageHandlers(messageService)
	userHandlers := NewUserHandlers(userService, cfg)
	apiHandlers := NewAPIHandlers(roomService)
	wsHandlers := NewWebSocketHandlers(authService, roomService, hubManager)

	authRequired := AuthRequired(authService)

	r.GET("/", roomHandlers.Home)
	r.GET("/room/:id/", roomHandlers.Room)
	r.POST("/room/:id/", authRequired, roomHandlers.PostMessage)

	r.GET("/login/", authHandlers.LoginPage)
	r.POST("/login/", authHandlers.Login)
	r.GET("/logout/", authHandlers.Logout)
	r.POST("/logout/", authHandlers.Logout)
	r.GET("/register/", authHandlers.RegisterPage)
	r.POST("/register/", authHandlers.Register)

	r.GET("/create-room/", authRequired, roomHandlers.CreateRoomForm)
	r.POST("/create-room/", authRequired, roomHandlers.CreateRoom)
	r.GET("/update-room/:id/", authRequired, roomHandlers.UpdateRoomForm)
	r.POST("/update-room/:id/", authRequired, roomHandlers.UpdateRoom)
	r.GET("/delete-room/:id/", authRequired, roomHandlers.DeleteRoomConfirm)
	r.POST("/delete-room/:id/", authRequired, roomHandlers.DeleteRoom)

	r.GET("/delete-message/:id/", authRequired, messageHandlers.DeleteMessageConfirm)
	r.POST("/delete-message/:id/", authRequired, messageHandlers.DeleteMessage)

	r.GET("/profile/:id/", userHandlers.Profile)
	r.GET("/update-user/", authRequired, userHandlers.UpdateUserForm)
	r.POST("/update-user/", authRequired, userHandlers.UpdateUser)
	r.POST("/delete-account/", authRequired, userHandlers.DeleteAccount)

	r.GET("/topics/", roomHandlers.Topics)
	r.GET("/activity/", messageHandlers.Activity)

	api := r.Group("/api")
	api.GET("/", apiHandlers.Routes)
	api.GET("/rooms/", apiHandlers.Rooms)
	api.GET("/room/:id/", apiHandlers.Room)

	r.GET("/ws", wsHandlers.HandleWebSocket)

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func rateLimitErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again in "+time.Until(info.ResetTime).String())
}
