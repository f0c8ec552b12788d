package router

import (
	"time"

	"nairatrack/api"
	"nairatrack/config"
	_ "nairatrack/docs"
	"nairatrack/middleware"
	"nairatrack/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter wires the HTTP surface.
func SetupRouter(cfg *config.Config, exportWorker *service.ExportWorker) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	r.Use(CORSMiddleware())

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Rendered export files, served directly from disk
	r.Static("/exports/files", cfg.Export.Dir)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Everything under /api/v1 requires a valid Auth0 token
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Auth())
	v1.Use(middleware.RateLimit(300, time.Minute))
	{
		authHandler := api.NewAuthHandler()
		v1.GET("/auth/me", authHandler.Me)
		v1.PATCH("/auth/me", authHandler.UpdateMe)

		connectionHandler := api.NewConnectionHandler()
		connections := v1.Group("/connections")
		{
			connections.GET("", connectionHandler.List)
			connections.GET("/:id", connectionHandler.Get)
			connections.DELETE("/:id", connectionHandler.Delete)
			connections.POST("/:id/sync", connectionHandler.Sync)
		}

		accountHandler := api.NewAccountHandler()
		accounts := v1.Group("/accounts")
		{
			accounts.GET("", accountHandler.List)
			accounts.GET("/:id", accountHandler.Get)
		}

		transactionHandler := api.NewTransactionHandler()
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.POST("/manual", transactionHandler.CreateManual)
			transactions.POST("/bulk-categorize", transactionHandler.BulkCategorize)
			transactions.GET("/:id", transactionHandler.Get)
			transactions.PATCH("/:id", transactionHandler.Update)
		}

		categoryHandler := api.NewCategoryHandler()
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.PATCH("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
		}

		ruleHandler := api.NewCategoryRuleHandler()
		rules := v1.Group("/category-rules")
		{
			rules.GET("", ruleHandler.List)
			rules.POST("", ruleHandler.Create)
			rules.PATCH("/:id", ruleHandler.Update)
			rules.DELETE("/:id", ruleHandler.Delete)
		}

		budgetHandler := api.NewBudgetHandler()
		budgets := v1.Group("/budgets")
		{
			budgets.GET("", budgetHandler.List)
			budgets.POST("", budgetHandler.Create)
			budgets.GET("/:id", budgetHandler.Get)
			budgets.PATCH("/:id", budgetHandler.Update)
			budgets.DELETE("/:id", budgetHandler.Delete)
			budgets.GET("/:id/progress", budgetHandler.Progress)
		}

		goalHandler := api.NewGoalHandler()
		goals := v1.Group("/goals")
		{
			goals.GET("", goalHandler.List)
			goals.POST("", goalHandler.Create)
			goals.GET("/:id", goalHandler.Get)
			goals.PATCH("/:id", goalHandler.Update)
			goals.DELETE("/:id", goalHandler.Delete)
			goals.POST("/:id/contribute", goalHandler.Contribute)
		}

		recurringHandler := api.NewRecurringHandler()
		recurring := v1.Group("/recurring")
		{
			recurring.GET("", recurringHandler.List)
			recurring.POST("", recurringHandler.Create)
			recurring.GET("/upcoming", recurringHandler.Upcoming)
			recurring.PATCH("/:id", recurringHandler.Update)
			recurring.DELETE("/:id", recurringHandler.Delete)
		}

		reportHandler := api.NewReportHandler()
		reports := v1.Group("/reports")
		{
			reports.GET("/monthly", reportHandler.Monthly)
			reports.GET("/net-worth", reportHandler.NetWorth)
			reports.GET("/cash-flow", reportHandler.CashFlow)
			reports.GET("/spending-trends", reportHandler.SpendingTrends)
		}

		insightHandler := api.NewInsightHandler()
		insights := v1.Group("/insights")
		{
			insights.GET("", insightHandler.List)
			insights.POST("/:id/dismiss", insightHandler.Dismiss)
		}

		exportHandler := api.NewExportHandler(exportWorker)
		exports := v1.Group("/exports")
		{
			exports.GET("", exportHandler.List)
			exports.POST("", exportHandler.Create)
			exports.GET("/:id", exportHandler.Get)
		}
	}

	return r
}

// CORSMiddleware allows browser clients from any origin.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
