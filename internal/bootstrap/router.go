package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/plantkeeper/plantkeeper-backend/internal/api/http"
	"github.com/plantkeeper/plantkeeper-backend/internal/api/http/middleware"
	"github.com/plantkeeper/plantkeeper-backend/internal/auth"
	authhttp "github.com/plantkeeper/plantkeeper-backend/internal/auth/http"
	"github.com/plantkeeper/plantkeeper-backend/internal/plants/cache"
	planthttp "github.com/plantkeeper/plantkeeper-backend/internal/plants/http"
	"github.com/plantkeeper/plantkeeper-backend/internal/plants/repository"
	"github.com/plantkeeper/plantkeeper-backend/internal/plants/service"
	"github.com/plantkeeper/plantkeeper-backend/internal/session"
	"github.com/plantkeeper/plantkeeper-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Version     string

	DB    *sql.DB
	Redis *redis.Client

	// Verifier and Updater are nil when no Firebase credentials are
	// configured; protected routes then fall back to the dev identity.
	Verifier auth.TokenVerifier
	Updater  auth.ProfileUpdater

	Gate *session.Gate
	Bus  *session.Broadcaster

	AllowedOrigins []string
	CacheTTL       time.Duration
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	requireUser := auth.DevUser()
	if dep.Verifier != nil {
		requireUser = auth.RequireUser(dep.Verifier)
	}

	// Protected routes pass the session gate first: 503 while the first
	// session check is outstanding, 401 with a login redirect when signed
	// out, then per-request token verification. Dev identity mode has no
	// session lifecycle, so the gate is skipped there.
	guards := []gin.HandlerFunc{requireUser}
	if dep.Gate != nil && dep.Verifier != nil {
		guards = []gin.HandlerFunc{session.Guard(dep.Gate), requireUser}
	}

	var catalogCache service.Cache
	if dep.Redis != nil {
		catalogCache = cache.New(dep.Redis, dep.CacheTTL)
	}

	plantRepo := repository.NewRepo(dep.DB)
	plantSvc := service.New(plantRepo, catalogCache)
	plantHandler := planthttp.New(plantSvc)

	userRepo := users.NewRepo(dep.DB)
	authHandler := authhttp.New(dep.Verifier, dep.Updater, userRepo, dep.Gate, dep.Bus)

	// All API routes share a per-IP limit.
	limiter := middleware.NewRateLimiter(120, time.Minute)

	api := r.Group("/")
	api.Use(limiter.Middleware())

	plantHandler.Register(api, guards...)
	authHandler.Register(api, guards...)

	return r
}
