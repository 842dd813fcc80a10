package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"clientbook/backend/internal/config"
	"clientbook/backend/internal/middleware"
	"clientbook/backend/internal/models"
	"clientbook/backend/internal/queue"
	"clientbook/backend/internal/repository"
	"clientbook/backend/internal/security"
	"clientbook/backend/internal/service"
	"clientbook/backend/internal/storage"
)

type HandlerSet struct {
	log     zerolog.Logger
	cfg     *config.AppConfig
	tokens  *security.TokenService
	auth    *service.AuthService
	clients *service.ClientService
	avatars *service.AvatarService
	users   *repository.UserRepository
	db      *pgxpool.Pool
	cache   *redis.Client
	limiter *redis_rate.Limiter
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, mail *queue.Producer, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	tokens := security.NewTokenService(
		cfg.Security.JWTSecret,
		cfg.Security.AccessTTL,
		cfg.Security.RefreshTTL,
		cfg.Security.EmailTokenTTL,
	)

	auth := service.NewAuthService(userRepo, tokens, mail, log)
	clients := service.NewClientService(clientRepo, log)
	avatars := service.NewAvatarService(userRepo, store, log)

	return HandlerSet{
		log:     log,
		cfg:     cfg,
		tokens:  tokens,
		auth:    auth,
		clients: clients,
		avatars: avatars,
		users:   userRepo,
		db:      db,
		cache:   cache,
		limiter: redis_rate.NewLimiter(cache),
	}
}

// ClientService exposes the address-book service for the digest
// scheduler, which runs outside the HTTP path.
func (h HandlerSet) ClientService() *service.ClientService {
	return h.clients
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	auth := router.Group("/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.GET("/refresh_token", h.Refresh)
	auth.POST("/logout", h.Logout)
	auth.GET("/confirmed_email/:token", h.ConfirmEmail)
	auth.POST("/request_email", h.RequestEmail)
	auth.POST("/reset_password", h.ResetPassword)
	auth.POST("/change_password", h.ChangePassword)

	users := router.Group("/users")
	users.Use(middleware.Auth(h.tokens, h.users))
	users.GET("/me", h.Me)
	users.PATCH("/avatar", h.UpdateAvatar)

	readRoles := middleware.RequireRoles(models.RoleAdmin, models.RoleModerator, models.RoleUser)
	writeRoles := middleware.RequireRoles(models.RoleAdmin, models.RoleModerator)
	adminRoles := middleware.RequireRoles(models.RoleAdmin)

	clients := router.Group("/clients")
	clients.Use(middleware.Auth(h.tokens, h.users))
	clients.GET("", readRoles, h.rateLimit("clients_list", 3, 10*time.Second), h.ListClients)
	clients.GET("/birthday", readRoles, h.rateLimit("clients_birthday", 3, 10*time.Second), h.UpcomingBirthdays)
	clients.GET("/search", readRoles, h.rateLimit("clients_search", 3, 10*time.Second), h.SearchClients)
	clients.GET("/:id", readRoles, h.rateLimit("clients_get", 3, 10*time.Second), h.GetClient)
	clients.POST("", writeRoles, h.rateLimit("clients_create", 2, time.Minute), h.CreateClient)
	clients.PUT("/:id", writeRoles, h.rateLimit("clients_update", 3, 10*time.Second), h.UpdateClient)
	clients.DELETE("/:id", adminRoles, h.rateLimit("clients_delete", 3, 10*time.Second), h.DeleteClient)
}

func (h HandlerSet) rateLimit(route string, rate int, period time.Duration) gin.HandlerFunc {
	return middleware.RateLimit(h.limiter, route, rate, period, h.log)
}
