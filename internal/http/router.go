package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"recipehub/internal/auth"
	"recipehub/internal/cache"
	"recipehub/internal/config"
	"recipehub/internal/http/handlers"
	"recipehub/internal/http/middlewares"
	"recipehub/internal/observability"
	"recipehub/internal/repo/postgres"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxRequestBody = 1 << 20 // 1 MiB, recipes are small

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// own registry so repeated router construction in tests never trips
	// duplicate metric registration
	promRegistry := prometheus.NewRegistry()
	prom := observability.NewProm(promRegistry)

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(otelgin.Middleware("recipehub"))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxRequestBody))
	r.Use(middlewares.RequireJSON())

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	categoriesRepo := postgres.NewCategoriesRepo(pool, prom)
	recipesRepo := postgres.NewRecipesRepo(pool, prom)

	jwtManager := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	authMw := middlewares.NewAuthMiddleware(jwtManager)

	categoryCache := cache.New(30 * time.Second)

	// handlers
	healthHandler := handlers.NewHealthHandler(cfg.Env, cfg.Version, ping)
	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager)
	categoriesHandler := handlers.NewCategoriesHandler(categoriesRepo, categoryCache)
	recipesHandler := handlers.NewRecipesHandler(recipesRepo)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))
	r.GET("/readyz", healthHandler.Readyz)

	api := r.Group("/api")

	api.GET("/health", healthHandler.Health)

	// credential endpoints get a tighter per-IP limit
	authLimiter := middlewares.NewRateLimiter(10, time.Minute)

	authGroup := api.Group("/auth")
	authGroup.Use(authLimiter.RateLimiterMiddleware(middlewares.KeyByIP))
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(authMw.RequireAuth())

	protected.GET("/categorias", categoriesHandler.ListCategories)
	protected.GET("/categorias/count", categoriesHandler.CountCategories)

	protected.GET("/receitas", recipesHandler.ListRecipes)
	protected.GET("/receitas/count", recipesHandler.CountRecipes)
	protected.GET("/receitas/:id", recipesHandler.GetRecipeById)
	protected.POST("/receitas", recipesHandler.CreateRecipe)
	protected.PUT("/receitas/:id", recipesHandler.UpdateRecipe)
	protected.DELETE("/receitas/:id", recipesHandler.DeleteRecipe)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":  "Endpoint not found",
			"path":   ctx.Request.URL.Path,
			"method": ctx.Request.Method,
		})
	})

	return r
}
