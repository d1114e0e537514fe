package main

import (
	"context"
	"log"
	"os"

	"github.com/example/task-manager-api/config"
	"github.com/example/task-manager-api/modules/activity"
	"github.com/example/task-manager-api/modules/api"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/database"
	"github.com/example/task-manager-api/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== Task Manager API ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(config.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	// The database plugin starts before and stops after every module
	if err := app.RegisterPlugin(database.NewPluginModule(cfg.DatabaseURL, logger), "db"); err != nil {
		log.Fatalf("Failed to register database plugin: %v", err)
	}

	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule(cfg, logger))
	app.Register(task.NewModule(logger))
	app.Register(activity.NewModule(logger))
	app.Register(api.NewModule(cfg.Addr(), logger))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		config.ShutdownTimeout,
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

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost%s):", cfg.Addr())
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  GET    /                - Welcome message")
	log.Println("  GET    /health          - Health check")
	log.Println("  POST   /users/signup    - Register a new user")
	log.Println("  POST   /users/login     - Login and get a session token")
	log.Println("")
	log.Println("  Protected Endpoints (Authorization: Bearer <token>):")
	log.Println("  GET    /tasks           - List your tasks")
	log.Println("  GET    /tasks/search    - Search by title, status, description")
	log.Println("  GET    /tasks/:id       - Get a task")
	log.Println("  POST   /tasks           - Create a task")
	log.Println("  PUT    /tasks/:id       - Update a task")
	log.Println("  DELETE /tasks/:id       - Delete a task")
	log.Println("  GET    /activity        - Your recent task activity")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
