package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rbsaketh/management-system/internal/ai"
	"github.com/rbsaketh/management-system/internal/inventory"
)

//
// --- Classification / Recipe Proxy Routes ---
//
// These two routes keep the contract the browser client already speaks:
// the user ID and the caller's own API key travel in the JSON body, every
// response carries a "success" flag, a missing key is a 400 and a
// downstream failure a 500. The classification route also writes the
// result straight into the store (add 1 if absent, atomic increment
// otherwise) with no confirmation step.
//

type ClassifyImageInput struct {
	Image  string `json:"image"`
	UserID string `json:"userId"`
	APIKey string `json:"apiKey"`
}

// ClassifyImage is the handler for POST /api/classify-image.
func (h *Handlers) ClassifyImage(c *gin.Context) {
	var input ClassifyImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}

	if input.APIKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Gemini API key is required."})
		return
	}
	if input.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image data is required."})
		return
	}

	userID, err := strconv.ParseInt(input.UserID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid user id is required."})
		return
	}

	name, err := h.AI.ClassifyImage(c.Request.Context(), input.APIKey, input.Image)
	if err != nil {
		if errors.Is(err, ai.ErrUnrecognizedItem) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "This item can't be added to your pantry list"})
			return
		}
		log.Printf("Error during item classification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to classify the item. Please try again."})
		return
	}

	name, err = inventory.NormalizeName(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "This item can't be added to your pantry list"})
		return
	}

	// The pre-read only picks the response message; the write itself is a
	// single upsert, so a concurrent classification of the same item still
	// increments atomically.
	_, getErr := h.Items.GetItem(c.Request.Context(), userID, name)
	existed := getErr == nil

	if err := h.Items.AddItem(c.Request.Context(), userID, name, 1); err != nil {
		log.Printf("Error saving classified item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to classify the item. Please try again."})
		return
	}

	message := fmt.Sprintf("%s added to your pantry list", name)
	if existed {
		message = fmt.Sprintf("%s quantity updated in your pantry list", name)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

type GenerateRecipeInput struct {
	UserID string `json:"userId"`
	APIKey string `json:"apiKey"`
}

// GenerateRecipe is the handler for POST /api/generate-recipe.
func (h *Handlers) GenerateRecipe(c *gin.Context) {
	var input GenerateRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}

	if input.APIKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Llama 3.1 API key is required."})
		return
	}

	userID, err := strconv.ParseInt(input.UserID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid user id is required."})
		return
	}

	items, err := h.Items.ListItems(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error loading inventory for recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate recipe. Please try again."})
		return
	}

	recipe, err := h.AI.GenerateRecipe(c.Request.Context(), input.APIKey, items)
	if err != nil {
		log.Printf("Error generating recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate recipe. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}
