package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Catalog        *handlers.CatalogHandler
	Profile        *handlers.ProfileHandler
	SellerProducts *handlers.SellerProductsHandler
	Cart           *handlers.CartHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/debug/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Accounts.Signup)
	authGroup.Post("/signup/seller", cfg.Accounts.SellerSignup)
	authGroup.Post("/login", cfg.Accounts.Login)
	authGroup.Post("/token/refresh", cfg.Accounts.Refresh)

	// Link endpoints from verification emails. The token itself is the
	// credential, so these stay outside the auth middleware.
	authGroup.Get("/verify/:uid/:token", cfg.Accounts.VerifyEmail)
	authGroup.Get("/verify/:uid/:email/:token", cfg.Accounts.ConfirmEmailChange)
	authGroup.Post("/password/reset", cfg.Accounts.RequestPasswordReset)
	authGroup.Patch("/password/reset/:uid/:token", cfg.Accounts.ConfirmPasswordReset)

	account := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	account.Get("/me", cfg.Accounts.Me)
	account.Patch("/email", cfg.Accounts.ChangeEmail)
	account.Patch("/password", cfg.Accounts.ChangePassword)
	account.Post("/password/check", cfg.Accounts.CheckPassword)

	app.Get("/categories", cfg.Catalog.Categories)
	app.Get("/product-id-types", cfg.AuthMiddleware.Handle, auth.RequireSeller(), cfg.Catalog.IDTypes)
	app.Get("/products", cfg.Catalog.Products)
	app.Get("/products/:slug", cfg.Catalog.ProductDetail)
	app.Get("/products/:slug/questions", cfg.Catalog.Questions)
	app.Post("/products/:slug/questions", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Catalog.AskQuestion)

	buyer := app.Group("/buyer", cfg.AuthMiddleware.Handle, auth.RequireBuyer())
	buyer.Get("/profile", cfg.Profile.BuyerProfile)
	buyer.Get("/addresses", cfg.Profile.Addresses)
	buyer.Post("/addresses", cfg.Profile.AddAddress)

	seller := app.Group("/seller", cfg.AuthMiddleware.Handle, auth.RequireSeller())
	seller.Get("/profile", cfg.Profile.SellerProfile)
	seller.Patch("/profile", cfg.Profile.UpdateSellerProfile)
	seller.Get("/products", cfg.SellerProducts.List)
	seller.Post("/products", cfg.SellerProducts.Create)
	seller.Get("/products/:slug", cfg.SellerProducts.Get)
	seller.Put("/products/:slug", cfg.SellerProducts.Update)
	seller.Patch("/products/:slug", cfg.SellerProducts.Update)
	seller.Delete("/products/:slug", cfg.SellerProducts.Delete)
	seller.Patch("/questions/:id", cfg.SellerProducts.AnswerQuestion)

	cart := app.Group("/cart", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	cart.Get("/", cfg.Cart.List)
	cart.Post("/:slug", cfg.Cart.Add)
}
