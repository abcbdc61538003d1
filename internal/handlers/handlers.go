package handlers

import (
	"context"

	"github.com/rbsaketh/management-system/internal/models"
	"github.com/rbsaketh/management-system/internal/store"
)

// AIClient is the slice of the AI service the proxy handlers need.
// *ai.Service satisfies it; the tests substitute a stub.
type AIClient interface {
	ClassifyImage(ctx context.Context, apiKey, image string) (string, error)
	GenerateRecipe(ctx context.Context, apiKey string, items []models.Item) (string, error)
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Items store.ItemStore
	Users store.UserStore
	AI    AIClient
}
