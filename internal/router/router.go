// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/config"
	"github.com/alluracouro/allura-backend/internal/gateway"
	"github.com/alluracouro/allura-backend/internal/handlers"
	"github.com/alluracouro/allura-backend/internal/middleware"
	"github.com/alluracouro/allura-backend/internal/services"
	"github.com/alluracouro/allura-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Payment gateways
	providers := []gateway.CheckoutProvider{
		gateway.NewInfinitePayProvider(cfg.Payment.InfinitePayHandle, cfg.Frontend.BaseURL),
	}
	if cfg.Payment.StripeSecretKey != "" {
		providers = append(providers, gateway.NewStripeProvider(
			cfg.Payment.StripeSecretKey,
			cfg.Frontend.BaseURL+"/pedido/{ORDER_ID}/sucesso",
			cfg.Frontend.BaseURL+"/pedido/{ORDER_ID}/cancelado",
		))
	}

	// Services
	storageService, _ := services.NewStorageService(cfg)
	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db)
	taxonomyService := services.NewTaxonomyService(db)
	couponService := services.NewCouponService(db)
	pricingService := services.NewPricingService(db, cfg.Store.MassDiscountChunk)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, cfg, cartService, couponService, providers)
	settingsService := services.NewSettingsService(db, time.Duration(cfg.Store.SettingsCacheTTL)*time.Second, nil)
	layoutService := services.NewLayoutService(db)
	expenseService := services.NewExpenseService(db)
	noteService := services.NewNoteService(db)
	conciergeService := services.NewConciergeService(cfg)
	adminService := services.NewAdminService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, storageService, cfg.Store.MaxInstallments)
	taxonomyHandler := handlers.NewTaxonomyHandler(taxonomyService)
	couponHandler := handlers.NewCouponHandler(couponService)
	pricingHandler := handlers.NewPricingHandler(pricingService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(orderService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	layoutHandler := handlers.NewLayoutHandler(layoutService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	noteHandler := handlers.NewNoteHandler(noteService)
	conciergeHandler := handlers.NewConciergeHandler(conciergeService)
	adminHandler := handlers.NewAdminHandler(adminService)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
			auth.PUT("/me", middleware.AuthRequired(), authHandler.UpdateProfile)
			auth.PUT("/password", middleware.AuthRequired(), authHandler.ChangePassword)
		}

		// Storefront catalog
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.GetProducts)
			products.GET("/featured", productHandler.GetFeaturedProducts)
			products.GET("/slug/:slug", productHandler.GetProductBySlug)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)
		}

		brands := v1.Group("/brands")
		{
			brands.GET("", middleware.OptionalAuth(), taxonomyHandler.GetBrands)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", middleware.OptionalAuth(), taxonomyHandler.GetCategories)
		}

		collections := v1.Group("/collections")
		{
			collections.GET("", middleware.OptionalAuth(), taxonomyHandler.GetCollections)
			collections.GET("/highlighted", taxonomyHandler.GetHighlightedCollections)
		}

		// Coupons (validation is open to the storefront)
		coupons := v1.Group("/coupons")
		{
			coupons.POST("/validate", couponHandler.ValidateCoupon)
		}

		// Site settings and published layouts (public reads)
		v1.GET("/settings/:category", settingsHandler.GetCategory)
		v1.GET("/layouts/:page", layoutHandler.GetLayout)

		// Cart
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
		}

		// Checkout and orders
		v1.POST("/checkout", middleware.AuthRequired(), checkoutHandler.Checkout)
		v1.GET("/payments/callback/:provider", checkoutHandler.PaymentCallback)

		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", checkoutHandler.GetMyOrders)
			orders.GET("/:id", checkoutHandler.GetOrder)
		}

		// AI concierge
		concierge := v1.Group("/concierge")
		concierge.Use(middleware.ConciergeRateLimit())
		{
			concierge.POST("/chat", middleware.OptionalAuth(), conciergeHandler.Chat)
		}

		// Admin surface
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			dashboard := admin.Group("/dashboard")
			{
				dashboard.GET("", adminHandler.GetDashboard)
				dashboard.GET("/revenue", adminHandler.GetRevenueSeries)
			}

			admin.GET("/customers", adminHandler.GetCustomers)

			adminProducts := admin.Group("/products")
			{
				adminProducts.POST("", productHandler.CreateProduct)
				adminProducts.PUT("/:id", productHandler.UpdateProduct)
				adminProducts.DELETE("/:id", productHandler.DeleteProduct)
				adminProducts.GET("/low-stock", productHandler.GetLowStockProducts)
				adminProducts.POST("/:id/stock", productHandler.AdjustStock)
				adminProducts.POST("/upload-images", middleware.UploadRateLimit(), productHandler.UploadProductImages)
				adminProducts.DELETE("/uploads", productHandler.DeleteUpload)
				adminProducts.GET("/uploads/presign", productHandler.PresignUpload)
			}

			adminBrands := admin.Group("/brands")
			{
				adminBrands.POST("", taxonomyHandler.CreateBrand)
				adminBrands.PUT("/:id", taxonomyHandler.UpdateBrand)
				adminBrands.DELETE("/:id", taxonomyHandler.DeleteBrand)
				adminBrands.POST("/reorder", taxonomyHandler.ReorderBrands)
			}

			adminCategories := admin.Group("/categories")
			{
				adminCategories.POST("", taxonomyHandler.CreateCategory)
				adminCategories.PUT("/:id", taxonomyHandler.UpdateCategory)
				adminCategories.DELETE("/:id", taxonomyHandler.DeleteCategory)
				adminCategories.POST("/reorder", taxonomyHandler.ReorderCategories)
			}

			adminCollections := admin.Group("/collections")
			{
				adminCollections.POST("", taxonomyHandler.CreateCollection)
				adminCollections.PUT("/:id", taxonomyHandler.UpdateCollection)
				adminCollections.DELETE("/:id", taxonomyHandler.DeleteCollection)
				adminCollections.POST("/reorder", taxonomyHandler.ReorderCollections)
			}

			adminCoupons := admin.Group("/coupons")
			{
				adminCoupons.GET("", couponHandler.GetCoupons)
				adminCoupons.POST("", couponHandler.CreateCoupon)
				adminCoupons.PUT("/:id", couponHandler.UpdateCoupon)
				adminCoupons.DELETE("/:id", couponHandler.DeleteCoupon)
			}

			adminPricing := admin.Group("/pricing")
			{
				adminPricing.POST("/preview", pricingHandler.PreviewDiscount)
				adminPricing.POST("/apply", pricingHandler.ApplyMassDiscount)
			}

			admin.GET("/orders", checkoutHandler.GetAllOrders)
			admin.PUT("/payments/:id/status", checkoutHandler.SetPaymentStatus)

			adminSettings := admin.Group("/settings")
			{
				adminSettings.GET("", settingsHandler.ListAll)
				adminSettings.PUT("/:category/:key", settingsHandler.UpsertSetting)
			}

			adminLayouts := admin.Group("/layouts")
			{
				adminLayouts.GET("/:page/session", layoutHandler.GetSession)
				adminLayouts.POST("/:page/move", layoutHandler.MoveSection)
				adminLayouts.POST("/:page/visibility", layoutHandler.SetVisibility)
				adminLayouts.POST("/:page/theme", layoutHandler.SetTheme)
				adminLayouts.POST("/:page/undo", layoutHandler.Undo)
				adminLayouts.POST("/:page/redo", layoutHandler.Redo)
				adminLayouts.POST("/:page/publish", layoutHandler.Publish)
				adminLayouts.POST("/:page/discard", layoutHandler.Discard)
			}

			adminExpenses := admin.Group("/expenses")
			{
				adminExpenses.GET("", expenseHandler.GetExpenses)
				adminExpenses.GET("/summary", expenseHandler.GetSummary)
				adminExpenses.POST("", expenseHandler.CreateExpense)
				adminExpenses.PUT("/:id", expenseHandler.UpdateExpense)
				adminExpenses.DELETE("/:id", expenseHandler.DeleteExpense)
			}

			adminNotes := admin.Group("/notes")
			{
				adminNotes.GET("", noteHandler.GetBoard)
				adminNotes.POST("", noteHandler.CreateNote)
				adminNotes.PUT("/:id", noteHandler.UpdateNote)
				adminNotes.PUT("/:id/move", noteHandler.MoveNote)
				adminNotes.DELETE("/:id", noteHandler.DeleteNote)
			}
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
