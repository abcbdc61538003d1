package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/rbsaketh/management-system/internal/ai"
	"github.com/rbsaketh/management-system/internal/database"
	"github.com/rbsaketh/management-system/internal/handlers"
	"github.com/rbsaketh/management-system/internal/routes"
	"github.com/rbsaketh/management-system/internal/store"
)

func main() {
	// --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// --- Storage ---
	// PANTRY_STORE=memory runs without a database for local development;
	// the default is the MySQL-backed store.
	var itemStore store.ItemStore
	var userStore store.UserStore

	if os.Getenv("PANTRY_STORE") == "memory" {
		log.Println("Using in-memory store (PANTRY_STORE=memory); data is not persisted.")
		mem := store.NewMemoryStore()
		itemStore, userStore = mem, mem
	} else {
		db, err := database.OpenDB()
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		mysqlStore, err := store.NewMySQLStore(db)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		itemStore, userStore = mysqlStore, mysqlStore
	}

	// --- AI Service ---
	// Both model APIs take the caller's key per request, so only optional
	// overrides are read here.
	aiService := ai.NewService(ai.Config{
		ChatCompletionsURL: os.Getenv("GROQ_API_URL"),
		VisionModel:        os.Getenv("GEMINI_VISION_MODEL"),
		RecipeModel:        os.Getenv("GROQ_RECIPE_MODEL"),
		SnapshotDir:        os.Getenv("PANTRY_SNAPSHOT_DIR"),
	})

	// --- Application Setup ---
	app := &handlers.Handlers{
		Items: itemStore,
		Users: userStore,
		AI:    aiService,
	}

	router := routes.SetupRouter(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting pantry inventory API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
