package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/rbsaketh/management-system/internal/handlers"
	"github.com/rbsaketh/management-system/internal/middleware"
)

// CORSMiddleware tells the browser the frontend origin may call us. The
// origin comes from CORS_ORIGIN; the default keeps local development open.
func CORSMiddleware() gin.HandlerFunc {
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "*"
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// The browser's preflight OPTIONS request must get 204 back.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.GET("/profile/me", h.Me)

			// --- Inventory Routes ---
			inventory := auth.Group("/inventory")
			{
				inventory.GET("", h.GetInventory)
				inventory.POST("/items", h.AddItem)
				inventory.PATCH("/items/:name/increment", h.IncrementItem)
				inventory.PATCH("/items/:name/decrement", h.DecrementItem)
				inventory.DELETE("/items/:name", h.RemoveItem)
			}
		}
	}

	// --- Proxy Routes (fixed contract the browser client speaks) ---
	api := router.Group("/api")
	{
		api.POST("/classify-image", h.ClassifyImage)
		api.POST("/generate-recipe", h.GenerateRecipe)
	}

	return router
}
