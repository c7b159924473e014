package controller

import (
	"agentgrind-service/conf"
	"agentgrind-service/controller/handler"
	"agentgrind-service/controller/respond"
	"agentgrind-service/docs"
	"agentgrind-service/service/bounty_service"
	"agentgrind-service/service/profile_service"
	"agentgrind-service/service/xauth_service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter setup API service router
func SetupRouter(bountyService *bounty_service.BountyService, profileService *profile_service.ProfileService, xauthService *xauth_service.XAuthService) *gin.Engine {
	// Set Swagger host from config
	if conf.Cfg.Api.SwaggerBaseUrl != "" {
		docs.SwaggerInfo.Host = conf.Cfg.Api.SwaggerBaseUrl
	}

	// Create Gin engine
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "Accept", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Add timing middleware
	r.Use(respond.TimingMiddleware())

	// Create handlers
	bountyHandler := handler.NewBountyHandler(bountyService)
	profileHandler := handler.NewProfileHandler(profileService, xauthService)

	// API v1 route group
	v1 := r.Group("/api/v1")
	{
		// Bounty routes
		bounties := v1.Group("/bounties")
		{
			// List bounties (open first, nearest deadline first)
			bounties.GET("", bountyHandler.ListBounties)

			// Build create-bounty transaction
			bounties.POST("", bountyHandler.CreateBounty)

			// Off-chain metadata (must be before /:action to avoid route conflict)
			bounties.POST("/metadata/batch", bountyHandler.BatchMetadata)
			bounties.GET("/:creator/:bountyId/metadata", bountyHandler.GetMetadata)
			bounties.PUT("/:creator/:bountyId/metadata", bountyHandler.SaveMetadata)

			// Get one bounty by PDA seeds
			bounties.GET("/:creator/:bountyId", bountyHandler.GetBounty)

			// Build a lifecycle action transaction
			bounties.POST("/:creator/:bountyId/:action", bountyHandler.BountyAction)
		}

		// Profile routes
		profiles := v1.Group("/profiles")
		{
			profiles.GET("/:wallet", profileHandler.GetProfile)
			profiles.POST("/:wallet/init", profileHandler.InitProfile)
		}

		// X linking routes
		x := v1.Group("/x")
		{
			x.GET("/start", profileHandler.StartXLink)
			x.GET("/callback", profileHandler.XCallback)
		}
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "agentgrind",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.InstanceName("swagger")))

	return r
}
