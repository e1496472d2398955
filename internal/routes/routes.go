package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SahilGarg15/StyleHub/internal/config"
	"github.com/SahilGarg15/StyleHub/internal/handlers"
	"github.com/SahilGarg15/StyleHub/internal/middleware"
	"github.com/SahilGarg15/StyleHub/internal/models"
	"github.com/SahilGarg15/StyleHub/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	apiKeyService := services.NewAPIKeyService(db)
	apiKeyService.Seed(cfg.APIKeys)

	authHandler := handlers.NewAuthHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db)
	orderHandler := handlers.NewOrderHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)
	userHandler := handlers.NewUserHandler(db)
	adminHandler := handlers.NewAdminHandler(apiKeyService)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "success",
			"message":   "StyleHub API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.Protect(cfg), authHandler.Me)
	auth.Post("/verify-email", authHandler.VerifyEmail)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Catalog routes (reads are public, writes are admin-only)
	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/category/:category", productHandler.ListProductsByCategory)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", middleware.Protect(cfg), middleware.RestrictTo(models.RoleAdmin), productHandler.CreateProduct)
	products.Put("/:id", middleware.Protect(cfg), middleware.RestrictTo(models.RoleAdmin), productHandler.UpdateProduct)
	products.Delete("/:id", middleware.Protect(cfg), middleware.RestrictTo(models.RoleAdmin), productHandler.DeleteProduct)

	// Order routes. Creation and lookups allow guests; the list is scoped
	// to the authenticated user and status changes are admin-only.
	orders := api.Group("/orders")
	orders.Post("/", middleware.OptionalAuth(cfg), orderHandler.CreateOrder)
	orders.Get("/", middleware.Protect(cfg), orderHandler.ListOrders)
	orders.Get("/number/:orderNumber", orderHandler.GetOrderByNumber)
	orders.Get("/:id/track", orderHandler.TrackOrder)
	orders.Get("/:id", middleware.OptionalAuth(cfg), orderHandler.GetOrder)
	orders.Patch("/:id/status", middleware.Protect(cfg), middleware.RestrictTo(models.RoleAdmin), orderHandler.UpdateOrderStatus)

	// Review routes
	reviews := api.Group("/reviews")
	reviews.Post("/", middleware.OptionalAuth(cfg), reviewHandler.CreateReview)
	reviews.Get("/product/:productId", reviewHandler.ListProductReviews)
	reviews.Put("/:id", middleware.Protect(cfg), reviewHandler.UpdateReview)
	reviews.Delete("/:id", middleware.Protect(cfg), reviewHandler.DeleteReview)

	// User routes
	users := api.Group("/users", middleware.Protect(cfg))
	users.Get("/profile", userHandler.GetProfile)
	users.Put("/profile", userHandler.UpdateProfile)
	users.Get("/addresses", userHandler.ListAddresses)
	users.Post("/addresses", userHandler.CreateAddress)
	users.Put("/addresses/:id", userHandler.UpdateAddress)
	users.Delete("/addresses/:id", userHandler.DeleteAddress)
	users.Get("/favorites", userHandler.ListFavorites)
	users.Post("/favorites/:productId", userHandler.AddFavorite)
	users.Delete("/favorites/:productId", userHandler.RemoveFavorite)

	// Partner surface: API-key gated, trusted but unauthenticated.
	external := api.Group("/external", middleware.RequireAPIKey(apiKeyService.Validate))
	external.Get("/products", productHandler.ListProducts)
	external.Get("/products/:id", productHandler.GetProduct)
	external.Post("/orders", orderHandler.CreateOrder)
	external.Get("/orders/number/:orderNumber", orderHandler.GetOrderByNumber)
	external.Get("/orders/:id", orderHandler.GetOrder)

	// Admin credential store
	adminKeys := api.Group("/admin/api-keys", middleware.Protect(cfg), middleware.RestrictTo(models.RoleAdmin))
	adminKeys.Get("/", adminHandler.ListAPIKeys)
	adminKeys.Post("/", adminHandler.CreateAPIKey)
	adminKeys.Delete("/:id", adminHandler.RevokeAPIKey)

	// Unmatched routes become an operational 404.
	app.Use(middleware.NotFound)
}
