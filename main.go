package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/recipebox/recipebox/config"
	"github.com/recipebox/recipebox/database"
	"github.com/recipebox/recipebox/database/repositories"
	"github.com/recipebox/recipebox/handlers"
	"github.com/recipebox/recipebox/logger"
	"github.com/recipebox/recipebox/middleware"
	webmodels "github.com/recipebox/recipebox/models"
	"github.com/recipebox/recipebox/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Initialize logger first
	customHandler := logger.NewHandler("RecipeBox")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting RecipeBox API",
		slog.String("version", version),
		slog.String("commit", commit))

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.LogError("Failed to load config", err)
		os.Exit(1)
	}
	customHandler.SetLevel(cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("Connecting to database...")
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		logger.LogError("Failed to connect to database", err)
		os.Exit(1)
	}
	slog.Info("Database connected successfully")

	if err := db.InitializeSchema(ctx); err != nil {
		logger.LogError("Failed to initialize schema", err)
		os.Exit(1)
	}

	repos := webmodels.NewRepositories(
		repositories.NewUserRepository(db.BunDB()),
		repositories.NewTokenRepository(db.BunDB()),
		repositories.NewRecipeRepository(db.BunDB()),
		repositories.NewTagRepository(db.BunDB()),
		repositories.NewIngredientRepository(db.BunDB()),
	)

	if count, err := repos.User.GetUserCount(ctx); err == nil {
		logger.LogSystem("Registered users", slog.Int64("count", count))
	}

	spacesService := services.NewSpacesService(
		cfg.Spaces.Key,
		cfg.Spaces.Secret,
		cfg.Spaces.Region,
		cfg.Spaces.Bucket,
		cfg.Spaces.RecipeRoot,
	)

	userService := services.NewUserService(repos.User, cfg.Auth.BcryptCost)
	tokenService := services.NewTokenService(repos.Token, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	recipeService := services.NewRecipeService(repos.Recipe, repos.Tag, repos.Ingredient)

	app := fiber.New(fiber.Config{
		AppName:      "RecipeBox API",
		ServerHeader: "RecipeBox",
		BodyLimit:    config.MaxImageSize + 1024*1024,
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.LoggingMiddleware())

	webApp := &handlers.WebApp{
		Config:  cfg,
		DB:      db,
		Repos:   repos,
		Spaces:  spacesService,
		Users:   userService,
		Tokens:  tokenService,
		Recipes: recipeService,
		Version: version,
		Commit:  commit,
	}

	setupRoutes(app, webApp)

	// Expired tokens are pruned in the background while the server runs
	pruneCtx, stopPrune := context.WithCancel(context.Background())
	defer stopPrune()
	go pruneExpiredTokens(pruneCtx, repos.Token)

	address := cfg.Address()
	slog.Info("Starting server", slog.String("address", address))

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	stopPrune()
	db.Close()

	logger.LogSystem("Server shutdown complete")
}

// pruneExpiredTokens deletes expired auth tokens once an hour.
func pruneExpiredTokens(ctx context.Context, tokens repositories.TokenRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := tokens.DeleteExpired(ctx)
			if err != nil {
				logger.LogError("Failed to prune expired tokens", err)
				continue
			}
			if deleted > 0 {
				logger.LogSystem("Pruned expired tokens", slog.Int64("count", deleted))
			}
		}
	}
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "RecipeBox API",
			"version": webApp.Version,
			"status":  "running",
		})
	})

	api := app.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Public account routes
	api.Post("/users",
		middleware.AuthRateLimit(),
		middleware.AuditLogMiddleware("register"),
		handlers.UsersRegister(webApp))
	api.Post("/users/token",
		middleware.AuthRateLimit(),
		middleware.AuditLogMiddleware("token"),
		handlers.UsersToken(webApp))

	// Everything below requires a valid token
	authed := api.Group("", middleware.AuthRequired(webApp))

	me := authed.Group("/users")
	me.Get("/me", handlers.UsersMeDetail(webApp))
	me.Patch("/me", handlers.UsersMeUpdate(webApp))
	me.Post("/logout",
		middleware.AuditLogMiddleware("logout"),
		handlers.UsersLogout(webApp))

	recipes := authed.Group("/recipes")
	recipes.Get("/", handlers.RecipesList(webApp))
	recipes.Post("/", handlers.RecipesCreate(webApp))
	recipes.Get("/:id", handlers.RecipesDetail(webApp))
	recipes.Put("/:id", handlers.RecipesUpdate(webApp))
	recipes.Patch("/:id", handlers.RecipesUpdate(webApp))
	recipes.Delete("/:id", handlers.RecipesDelete(webApp))
	recipes.Post("/:id/image",
		middleware.UploadRateLimit(),
		handlers.RecipesUploadImage(webApp))

	tags := authed.Group("/tags")
	tags.Get("/", handlers.TagsList(webApp))
	tags.Post("/", handlers.TagsCreate(webApp))
	tags.Patch("/:id", handlers.TagsUpdate(webApp))
	tags.Delete("/:id", handlers.TagsDelete(webApp))

	ingredients := authed.Group("/ingredients")
	ingredients.Get("/", handlers.IngredientsList(webApp))
	ingredients.Post("/", handlers.IngredientsCreate(webApp))
	ingredients.Patch("/:id", handlers.IngredientsUpdate(webApp))
	ingredients.Delete("/:id", handlers.IngredientsDelete(webApp))

	// No route matched
	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
		})
	})
}
