package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"lanblog/app/repository"
	"lanblog/internal/pkg/database"
	"lanblog/internal/pkg/env"
	"lanblog/internal/pkg/middleware"
	"lanblog/internal/pkg/router"
	"lanblog/internal/pkg/upload"
)

func main() {
	app := NewApplication()
	// Bind all interfaces; the local-network middleware keeps outside
	// callers away.
	err := app.Listen(fmt.Sprintf(":%s", env.GetEnv("PORT", "5000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	repository.InitializeFactory(database.GetDB())

	uploads := upload.NewManager(env.GetEnv("BLOG_UPLOAD_DIR", "uploads"))
	if err := uploads.Setup(); err != nil {
		log.Fatalf("failed to create upload directory: %v", err)
	}

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 10 * 1024 * 1024, // 10 MiB
	})
	app.Use(recover.New(), logger.New())
	app.Use(middleware.LocalNetworkOnly())

	router.InstallRouter(app)

	return app
}
