package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/recipe-share/modules/api"
	"github.com/example/recipe-share/modules/auth"
	cachemod "github.com/example/recipe-share/modules/cache"
	"github.com/example/recipe-share/modules/recipe"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Recipe Share API ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// The cache is optional: only wired when a Redis address is configured.
	var cacheModule *cachemod.Module
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		ttl := getEnvDuration("CACHE_TTL", 5*time.Minute)
		cacheModule = cachemod.NewModule(redisAddr, "recipe:", ttl)
		app.Register(cacheModule)
	}

	recipeModule := recipe.NewModule()

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())
	app.Register(recipeModule)
	app.Register(api.NewModule())

	// Start application. This fails fast when JWT_SECRET is not set.
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wire the cache into the recipe service after start, once the Redis
	// connection is established.
	if cacheModule != nil {
		recipeModule.SetCache(cacheModule.GetCache())
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints:")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/register      - Register a new user")
	log.Println("  POST   /api/login         - Login and get a token")
	log.Println("  GET    /api/recipes       - List all recipes")
	log.Println("  GET    /api/recipes/:id   - Get a recipe")
	log.Println("  GET    /health            - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  POST   /api/recipes       - Create a recipe")
	log.Println("  PUT    /api/recipes/:id   - Update an owned recipe")
	log.Println("  DELETE /api/recipes/:id   - Delete an owned recipe")
	log.Println("  GET    /api/profile       - Current user profile")
	log.Println("  GET    /api/admin/users   - List users (admin only)")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
