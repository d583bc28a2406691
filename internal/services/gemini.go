package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

var errEmptyResponse = errors.New("no text content in response")

// TextGenerator is the capability the evaluator needs from a generative
// model: one system instruction, one user prompt, one text answer.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemInstruction, prompt string) (string, error)
}

type GeminiService interface {
	TextGenerator
	Model() string
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

func NewGeminiService(ctx context.Context, apiKey, modelName string, temperature float32) (GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   modelName,
		temperature: temperature,
	}, nil
}

func (g *geminiService) Model() string {
	return g.modelName
}

// GenerateText implements TextGenerator.
func (g *geminiService) GenerateText(ctx context.Context, systemInstruction, prompt string) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       &temperature,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		reason := ""
		if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
			reason = string(resp.Candidates[0].FinishReason)
		}
		log.Warn().Str("model", g.modelName).Str("finish_reason", reason).Msg("❌ Gemini returned no text")
		return "", errEmptyResponse
	}

	return text, nil
}
