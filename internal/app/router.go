package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"skillpath_backend/docs"
	"skillpath_backend/internal/middleware"
	"skillpath_backend/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")

	// 1. Public routes, personalised when a valid token is present
	a.registerPublicRoutes(api, c)

	// 2. Accounts
	a.registerAuthRoutes(api, c)

	// 3. Assessment, market and resume tools
	a.registerToolRoutes(api, c)

	// 4. Career assistant
	a.registerAIRoutes(api, c)
}

func (a *App) registerPublicRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/health", c.health.HealthCheck)
	api.GET("/catalog", c.catalog.GetCatalog)
	api.GET("/home", c.dashboard.GetHome)
	api.GET("/dashboard", middleware.AuthMiddleware(a.services.auth), c.dashboard.GetDashboard)
}

func (a *App) registerAuthRoutes(api *gin.RouterGroup, c *controllers) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.auth.Register)
		auth.POST("/login", c.auth.Login)

		authorized := auth.Group("")
		authorized.Use(middleware.AuthMiddleware(a.services.auth))
		{
			authorized.POST("/logout", c.auth.Logout)
			authorized.GET("/me", c.auth.Me)
			authorized.PUT("/profile", c.auth.UpdateProfile)
			authorized.POST("/save-skills-analysis", c.auth.SaveSkillsAnalysis)
			authorized.GET("/skills-history", c.auth.SkillsHistory)
		}
	}
}

func (a *App) registerToolRoutes(api *gin.RouterGroup, c *controllers) {
	assessment := api.Group("/assessment")
	{
		assessment.POST("/wizards", c.assessment.CreateWizard)
		assessment.GET("/wizards/:id", c.assessment.GetWizard)
		assessment.POST("/wizards/:id/skills", c.assessment.ToggleSkill)
		assessment.PUT("/wizards/:id/experience", c.assessment.SetExperience)
		assessment.PUT("/wizards/:id/target", c.assessment.SetTarget)
		assessment.POST("/wizards/:id/next", c.assessment.Next)
		assessment.POST("/wizards/:id/previous", c.assessment.Previous)
		assessment.POST("/wizards/:id/run", c.assessment.Run)
		assessment.POST("/wizards/:id/reset", c.assessment.Reset)
		assessment.POST("/evaluate", c.assessment.Evaluate)
	}

	jobs := api.Group("/jobs")
	{
		jobs.POST("/analyze", c.job.Analyze)
		jobs.POST("/search", c.job.Search)
		jobs.POST("/skills-gap-analysis", c.job.SkillsGap)
		jobs.GET("/trending-skills", c.job.Trending)
		jobs.GET("/quick-analysis", c.job.Quick)
	}

	resume := api.Group("/resume")
	{
		resume.POST("/scan", c.resume.Scan)
		resume.POST("/parse", c.resume.Parse)
		resume.GET("/scans/:id", c.resume.GetScan)
	}
}

func (a *App) registerAIRoutes(api *gin.RouterGroup, c *controllers) {
	ai := api.Group("/ai")
	{
		ai.POST("/chat", c.ai.Chat)
		ai.POST("/claude", c.ai.Claude)
		ai.POST("/openai", c.ai.OpenAI)
		ai.GET("/providers", c.ai.Providers)
		ai.GET("/models", c.ai.Models)
	}
}
