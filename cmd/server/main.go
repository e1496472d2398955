package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/SahilGarg15/StyleHub/internal/config"
	"github.com/SahilGarg15/StyleHub/internal/database"
	"github.com/SahilGarg15/StyleHub/internal/middleware"
	"github.com/SahilGarg15/StyleHub/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	app := fiber.New(fiber.Config{
		AppName:      "StyleHub Backend",
		ErrorHandler: middleware.ErrorHandler(cfg.IsProduction()),
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowCredentials: true,
	}))

	routes.Register(app, db, cfg)

	log.Printf("Starting server on :%s (%s)", cfg.AppPort, cfg.Environment)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
