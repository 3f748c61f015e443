package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stayhub/internal/infra/config"
	"stayhub/internal/infra/obs"
)

type ListingHTTP interface {
	Catalog(c *gin.Context)
	Overview(c *gin.Context)
	Quote(c *gin.Context)
}

type FavoritesHTTP interface {
	Toggle(c *gin.Context)
	List(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
}

type AuthHTTP interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
	UploadAvatar(c *gin.Context)
}

type MeHTTP interface {
	ListBookings(c *gin.Context)
	Wallet(c *gin.Context)
}

type ChatHTTP interface {
	Open(c *gin.Context)
	List(c *gin.Context)
	History(c *gin.Context)
	Send(c *gin.Context)
	Stream(c *gin.Context)
}

type Handlers struct {
	Listing        ListingHTTP
	Favorites      FavoritesHTTP
	Booking        BookingHTTP
	Auth           AuthHTTP
	Me             MeHTTP
	Chat           ChatHTTP
	AuthMiddleware gin.HandlerFunc
	Metrics        gin.HandlerFunc
	MetricsRoute   gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	if h.Metrics != nil {
		router.Use(h.Metrics)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key", "X-Guest-Session"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)
	if h.MetricsRoute != nil {
		router.GET("/metrics", h.MetricsRoute)
	}

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
		api.POST("/auth/me/avatar", h.Auth.UploadAvatar)
	}
	if h.Listing != nil {
		api.GET("/listings", h.Listing.Catalog)
		api.GET("/listings/:id/overview", h.Listing.Overview)
		api.GET("/listings/:id/quote", h.Listing.Quote)
	}
	if h.Favorites != nil {
		api.GET("/favorites", h.Favorites.List)
		api.POST("/favorites/:listingID/toggle", h.Favorites.Toggle)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
	}
	if h.Me != nil {
		meGroup := api.Group("/me")
		meGroup.GET("/bookings", h.Me.ListBookings)
		meGroup.GET("/wallet", h.Me.Wallet)
	}
	if h.Chat != nil {
		chatGroup := api.Group("/chats")
		chatGroup.POST("", h.Chat.Open)
		chatGroup.GET("", h.Chat.List)
		chatGroup.GET("/:id/messages", h.Chat.History)
		chatGroup.POST("/:id/messages", h.Chat.Send)
		chatGroup.GET("/:id/stream", h.Chat.Stream)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
