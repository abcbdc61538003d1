package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rbsaketh/management-system/internal/inventory"
)

//
// --- Inventory Handlers ---
//
// Every mutation ends with a full re-read of the user's collection, and the
// refreshed listing is the response body. The client replaces its snapshot
// wholesale instead of patching it, so the UI can never drift from the
// store.
//

// GetInventory is the handler for GET /v1/inventory (initial load after
// sign-in).
func (h *Handlers) GetInventory(c *gin.Context) {
	h.respondWithInventory(c, http.StatusOK, mustUserID(c))
}

// AddItemInput defines the JSON for creating or topping up an item.
type AddItemInput struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// AddItem is the handler for POST /v1/inventory/items.
func (h *Handlers) AddItem(c *gin.Context) {
	userID := mustUserID(c)

	var input AddItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	name, err := inventory.NormalizeName(input.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Items.AddItem(c.Request.Context(), userID, name, input.Quantity); err != nil {
		if errors.Is(err, inventory.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}

	h.respondWithInventory(c, http.StatusCreated, userID)
}

// IncrementItem is the handler for PATCH /v1/inventory/items/:name/increment.
// Incrementing an absent key is a silent no-op; the record must pre-exist.
func (h *Handlers) IncrementItem(c *gin.Context) {
	userID := mustUserID(c)

	name, err := inventory.NormalizeName(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Items.IncrementItem(c.Request.Context(), userID, name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to increment item"})
		return
	}

	h.respondWithInventory(c, http.StatusOK, userID)
}

// DecrementItem is the handler for PATCH /v1/inventory/items/:name/decrement.
// A record at quantity 1 is deleted rather than stored at zero.
func (h *Handlers) DecrementItem(c *gin.Context) {
	userID := mustUserID(c)

	name, err := inventory.NormalizeName(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Items.DecrementItem(c.Request.Context(), userID, name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decrement item"})
		return
	}

	h.respondWithInventory(c, http.StatusOK, userID)
}

// RemoveItem is the handler for DELETE /v1/inventory/items/:name.
func (h *Handlers) RemoveItem(c *gin.Context) {
	userID := mustUserID(c)

	name, err := inventory.NormalizeName(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Items.RemoveItem(c.Request.Context(), userID, name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}

	h.respondWithInventory(c, http.StatusOK, userID)
}

// respondWithInventory re-reads the user's full collection and sends it as
// the authoritative snapshot.
func (h *Handlers) respondWithInventory(c *gin.Context, status int, userID int64) {
	items, err := h.Items.ListItems(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load inventory"})
		return
	}

	totalItems := 0
	for _, item := range items {
		totalItems += item.Quantity
	}

	c.JSON(status, gin.H{
		"items":      items,
		"totalItems": totalItems,
	})
}
