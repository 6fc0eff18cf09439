package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"breedid-backend/internal/config"
	"breedid-backend/internal/core"
	"breedid-backend/internal/middleware"
	"breedid-backend/internal/models"
)

// SetupRoutes wires every endpoint. Global middleware (request logging,
// recovery, CORS) is applied to the engine by the caller before this runs.
func SetupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	gate *middleware.AuthGate,
	userService core.UserService,
	predictionService core.PredictionService,
	scorer core.Classifier,
) {
	authHandler := NewAuthHandler(userService, logger)
	userHandler := NewUserHandler(userService, logger)
	predictionHandler := NewPredictionHandler(predictionService, logger)
	breedHandler := NewBreedHandler(predictionService, logger)

	// Public liveness probe. Reports scorer reachability without failing
	// the probe itself when the scorer is down.
	router.GET("/health", func(c *gin.Context) {
		scorerStatus := "up"
		if err := scorer.Health(c.Request.Context()); err != nil {
			scorerStatus = "down"
		}
		c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{
			"status":    "up",
			"mlService": scorerStatus,
		}})
	})

	root := router.Group(cfg.APIPrefix)

	// Authenticate-or-register runs without the gate: the token is
	// verified in-handler since a local record may not exist yet.
	authGroup := root.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Authenticate)
		authGroup.POST("/register", authHandler.Authenticate)
	}

	// Breed catalog endpoints carry no per-user data and stay public.
	root.GET("/breeds", breedHandler.List)
	root.GET("/breeds/:name", breedHandler.Info)

	userGroup := root.Group("/users", gate.Handler())
	{
		userGroup.GET("/profile", userHandler.GetProfile)
		userGroup.PUT("/profile", userHandler.UpdateProfile)
		userGroup.GET("", middleware.RequireRole(models.RoleOfficer), userHandler.List)
		userGroup.GET("/stats", middleware.RequireRole(models.RoleOfficer), userHandler.Stats)
		userGroup.PUT("/:id/role", middleware.RequireRole(models.RoleAdmin), userHandler.UpdateRole)
		userGroup.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), userHandler.Deactivate)
	}

	predictionGroup := root.Group("/predictions", gate.Handler())
	{
		predictionGroup.POST("/breed", middleware.RequireRole(models.RoleFarmer), predictionHandler.Classify)
		predictionGroup.GET("/history", predictionHandler.History)
		predictionGroup.GET("/stats", middleware.RequireRole(models.RoleOfficer), predictionHandler.Stats)
		predictionGroup.GET("/:id", predictionHandler.GetByID)
	}

	// Unmatched routes still answer with the structured envelope.
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "route not found",
			Data: gin.H{"examples": []string{
				"POST " + cfg.APIPrefix + "/auth/login",
				"POST " + cfg.APIPrefix + "/predictions/breed",
				"GET " + cfg.APIPrefix + "/predictions/history",
				"GET " + cfg.APIPrefix + "/breeds",
				"GET /health",
			}},
		})
	})

	logger.Info("routes configured", zap.String("prefix", cfg.APIPrefix))
}
