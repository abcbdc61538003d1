package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbsaketh/management-system/internal/ai"
)

const testImage = "data:image/jpeg;base64,/9j/4AAQ"

type proxyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Recipe  string `json:"recipe"`
}

func decodeProxy(t *testing.T, body []byte) proxyResponse {
	t.Helper()
	var resp proxyResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestClassifyImageAddsThenIncrements(t *testing.T) {
	router, mem := setupRouter(t, &stubAI{itemName: "Apple"})
	userID, _ := registerUser(t, router, "classify@example.com")

	body := gin.H{"image": testImage, "userId": userIDString(userID), "apiKey": "test-key"}

	// First classification creates the record at quantity 1.
	w := doJSON(t, router, http.MethodPost, "/api/classify-image", body, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeProxy(t, w.Body.Bytes())
	assert.True(t, resp.Success)
	assert.Equal(t, "Apple added to your pantry list", resp.Message)

	item, err := mem.GetItem(context.Background(), userID, "Apple")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	// A second classification of the same item increments it.
	w = doJSON(t, router, http.MethodPost, "/api/classify-image", body, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeProxy(t, w.Body.Bytes())
	assert.True(t, resp.Success)
	assert.Equal(t, "Apple quantity updated in your pantry list", resp.Message)

	item, err = mem.GetItem(context.Background(), userID, "Apple")
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
}

func TestClassifyImageRequiresAPIKey(t *testing.T) {
	router, _ := setupRouter(t, &stubAI{itemName: "Apple"})
	userID, _ := registerUser(t, router, "nokey@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/classify-image", gin.H{
		"image":  testImage,
		"userId": userIDString(userID),
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeProxy(t, w.Body.Bytes())
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestClassifyImageUnrecognizedItem(t *testing.T) {
	router, mem := setupRouter(t, &stubAI{classifyErr: ai.ErrUnrecognizedItem})
	userID, _ := registerUser(t, router, "unrecognized@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/classify-image", gin.H{
		"image": testImage, "userId": userIDString(userID), "apiKey": "test-key",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeProxy(t, w.Body.Bytes())
	assert.False(t, resp.Success)
	assert.Equal(t, "This item can't be added to your pantry list", resp.Message)

	items, err := mem.ListItems(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, items, "a failed classification must not write anything")
}

func TestClassifyImageDownstreamFailure(t *testing.T) {
	router, _ := setupRouter(t, &stubAI{classifyErr: errors.New("model unavailable")})
	userID, _ := registerUser(t, router, "downstream@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/classify-image", gin.H{
		"image": testImage, "userId": userIDString(userID), "apiKey": "test-key",
	}, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, decodeProxy(t, w.Body.Bytes()).Success)
}

func TestGenerateRecipe(t *testing.T) {
	stub := &stubAI{recipe: "Scrambled eggs with toast."}
	router, _ := setupRouter(t, stub)
	userID, token := registerUser(t, router, "recipe@example.com")

	w := doJSON(t, router, http.MethodPost, "/v1/inventory/items", gin.H{"name": "eggs", "quantity": 3}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/generate-recipe", gin.H{
		"userId": userIDString(userID),
		"apiKey": "test-key",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeProxy(t, w.Body.Bytes())
	assert.True(t, resp.Success)
	assert.Equal(t, "Scrambled eggs with toast.", resp.Recipe)

	// The generator saw the current inventory listing.
	require.Len(t, stub.recipeSeen, 1)
	assert.Equal(t, "eggs", stub.recipeSeen[0].Name)
	assert.Equal(t, 3, stub.recipeSeen[0].Quantity)
}

func TestGenerateRecipeRequiresAPIKey(t *testing.T) {
	router, _ := setupRouter(t, &stubAI{})
	userID, _ := registerUser(t, router, "recipenokey@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/generate-recipe", gin.H{
		"userId": userIDString(userID),
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decodeProxy(t, w.Body.Bytes()).Success)
}

func TestGenerateRecipeDownstreamFailure(t *testing.T) {
	router, _ := setupRouter(t, &stubAI{recipeErr: errors.New("model unavailable")})
	userID, _ := registerUser(t, router, "recipefail@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/generate-recipe", gin.H{
		"userId": userIDString(userID),
		"apiKey": "test-key",
	}, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeProxy(t, w.Body.Bytes())
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to generate recipe. Please try again.", resp.Message)
}
