package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/atelier-north/studio-backend/config"
	"github.com/atelier-north/studio-backend/internal/about"
	httpapi "github.com/atelier-north/studio-backend/internal/api/http"
	"github.com/atelier-north/studio-backend/internal/api/http/middleware"
	"github.com/atelier-north/studio-backend/internal/articles"
	"github.com/atelier-north/studio-backend/internal/auth"
	"github.com/atelier-north/studio-backend/internal/cache"
	"github.com/atelier-north/studio-backend/internal/home"
	"github.com/atelier-north/studio-backend/internal/projects"
	"github.com/atelier-north/studio-backend/internal/services"
	"github.com/atelier-north/studio-backend/internal/settings"
	"github.com/atelier-north/studio-backend/internal/uploads"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Config      *config.Config
	DB          *sql.DB
	Redis       *redis.Client
	Uploads     *uploads.Store
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.Config.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	pageCache := cache.NewDisabled()
	if dep.Redis != nil {
		pageCache = cache.New(dep.Redis)
	}

	servicesRepo := services.NewRepo(dep.DB)
	aboutRepo := about.NewRepo(dep.DB)
	projectsRepo := projects.NewRepo(dep.DB)
	articlesRepo := articles.NewRepo(dep.DB)
	settingsRepo := settings.NewRepo(dep.DB)
	authRepo := auth.NewRepo(dep.DB)

	tokens := auth.NewTokens(
		dep.Config.Auth.JWTSecret,
		dep.Config.Auth.Issuer,
		time.Duration(dep.Config.Auth.TokenTTLHours)*time.Hour,
	)

	homeSvc := home.NewService(projectsRepo, settingsRepo, pageCache)

	public := r.Group("/api/v1")
	public.Use(middleware.RateLimitMiddleware(dep.Config.Server.PublicRPS, dep.Config.Server.PublicBurst))

	services.RegisterPublic(public, servicesRepo, pageCache)
	about.RegisterPublic(public, aboutRepo, pageCache)
	projects.RegisterPublic(public, projectsRepo, pageCache)
	articles.RegisterPublic(public, articlesRepo, pageCache)
	settings.RegisterPublic(public, settingsRepo, pageCache)
	auth.RegisterPublic(public, authRepo, tokens)

	admin := r.Group("/api/v1/admin")
	admin.Use(auth.RequireSession(tokens))

	auth.RegisterAdmin(admin)
	services.RegisterAdmin(admin, servicesRepo, pageCache)
	about.RegisterAdmin(admin, aboutRepo, pageCache)
	projects.RegisterAdmin(admin, projectsRepo, pageCache)
	articles.RegisterAdmin(admin, articlesRepo, pageCache)
	settings.RegisterAdmin(admin, settingsRepo, pageCache)
	home.RegisterAdmin(admin, homeSvc)
	if dep.Uploads != nil {
		uploads.RegisterAdmin(admin, dep.Uploads)
	}

	return r
}
