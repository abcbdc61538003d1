// Package ai talks to the two external model APIs: Gemini for classifying
// a photographed pantry item, and Groq's chat completions endpoint for
// generating a recipe from the current inventory. Both calls use an API key
// supplied by the caller on each request, so no key is held at startup.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/rbsaketh/management-system/internal/models"
)

const (
	defaultChatCompletionsURL = "https://api.groq.com/openai/v1/chat/completions"
	defaultVisionModel        = "gemini-1.5-flash"
	defaultRecipeModel        = "llama3-8b-8192"

	classifyPrompt = "You are a pantry item predictor that can predict an item I am holding in my hand in the image. " +
		"Return only the name of the item that I am holding in the image. " +
		"If you cannot tell what the item is, return only the word false."

	recipeSystemPrompt = "Based on the items and quantities provided, provide recipes that the user can make."
)

// ErrUnrecognizedItem is returned when the classifier cannot name the item
// in the photo.
var ErrUnrecognizedItem = errors.New("item could not be classified")

// Config carries the optional overrides; zero values select the production
// endpoints and models.
type Config struct {
	ChatCompletionsURL string
	VisionModel        string
	RecipeModel        string

	// SnapshotDir, when set, receives a copy of every classified frame
	// under a random file name. The file is removed once classification
	// finishes.
	SnapshotDir string
}

// Service is the AI client shared by the proxy handlers.
type Service struct {
	client *http.Client
	config Config
}

func NewService(cfg Config) *Service {
	if cfg.ChatCompletionsURL == "" {
		cfg.ChatCompletionsURL = defaultChatCompletionsURL
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = defaultVisionModel
	}
	if cfg.RecipeModel == "" {
		cfg.RecipeModel = defaultRecipeModel
	}
	return &Service{
		client: &http.Client{Timeout: 30 * time.Second},
		config: cfg,
	}
}

// ClassifyImage sends the captured frame to the vision model and returns
// the predicted item name. The image arrives as the browser's base64 data
// URL. The model answers with the bare item name, or the word "false" when
// it cannot tell, which surfaces as ErrUnrecognizedItem.
func (s *Service) ClassifyImage(ctx context.Context, apiKey, image string) (string, error) {
	data, err := decodeImage(image)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if s.config.SnapshotDir != "" {
		path := filepath.Join(s.config.SnapshotDir, uuid.NewString()+".jpg")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Printf("Warning: failed to write classification snapshot: %v", err)
		} else {
			defer os.Remove(path)
		}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.config.VisionModel)
	res, err := model.GenerateContent(ctx, genai.ImageData("jpeg", data), genai.Text(classifyPrompt))
	if err != nil {
		return "", fmt.Errorf("classify image: %w", err)
	}

	return itemNameFromResponse(res)
}

func itemNameFromResponse(res *genai.GenerateContentResponse) (string, error) {
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", ErrUnrecognizedItem
	}
	text, ok := res.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", ErrUnrecognizedItem
	}

	name := strings.TrimSpace(string(text))
	if name == "" || strings.EqualFold(name, "false") {
		return "", ErrUnrecognizedItem
	}
	return name, nil
}

// decodeImage strips the "data:image/...;base64," prefix the browser adds
// and decodes the payload.
func decodeImage(image string) ([]byte, error) {
	if idx := strings.Index(image, ";base64,"); idx != -1 {
		image = image[idx+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(image)
}

//
// --- Recipe generation (Groq chat completions) ---
//

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateRecipe asks the text model for recipe suggestions based on the
// user's current inventory listing.
func (s *Service) GenerateRecipe(ctx context.Context, apiKey string, items []models.Item) (string, error) {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s (%d)", item.Name, item.Quantity))
	}

	payload := chatRequest{
		Model: s.config.RecipeModel,
		Messages: []chatMessage{
			{Role: "system", Content: recipeSystemPrompt},
			{Role: "user", Content: strings.Join(lines, ", ")},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.ChatCompletionsURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("recipe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode recipe response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("recipe response contained no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
