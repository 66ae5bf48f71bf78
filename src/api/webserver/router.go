package webserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/draftforge/draftforge/src/api/config"
	"github.com/draftforge/draftforge/src/api/storage"
)

// New builds the Gin engine with all routes attached.
func New(cfg config.Config, store *storage.Store, sessions SessionStore, rdb *redis.Client, gen ContentGenerator, pub Poster) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	attachRoutes(r, cfg, store, sessions, rdb, gen, pub)
	return r
}

func attachRoutes(r *gin.Engine, cfg config.Config, store *storage.Store, sessions SessionStore, rdb *redis.Client, gen ContentGenerator, pub Poster) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	secret := []byte(cfg.JWTSecret)
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour

	authH := NewAuth(store.Users, sessions, secret, ttl)
	googleH := NewGoogleAuth(authH, rdb, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	keysH := NewAPIKeys(store.APIKeys)
	contentH := NewContent(gen, store.Content)
	socialH := NewSocial(pub)

	limiter := NewRateLimiter(30, time.Minute)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/auth/google", googleH.Login)
	r.GET("/auth/google/callback", googleH.Callback)

	api := r.Group("/api")
	{
		api.POST("/register", authH.Register)
		api.POST("/login", authH.Login)
		api.GET("/models", contentH.Models)

		secured := api.Group("")
		secured.Use(SessionMiddleware(secret, sessions))
		{
			secured.POST("/logout", authH.Logout)
			secured.GET("/user", authH.Me)

			secured.POST("/generate", RateLimitMiddleware(limiter), contentH.Generate)
			secured.GET("/content", contentH.List)

			secured.GET("/settings/api-keys", keysH.List)
			secured.POST("/settings/api-keys", keysH.Create)
			secured.DELETE("/settings/api-keys/:id", keysH.Delete)

			secured.POST("/social/post", RateLimitMiddleware(limiter), socialH.Post)
		}
	}
}
