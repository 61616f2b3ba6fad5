package gateway

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"
)

// GeminiBackend implements Backend with the Google Gen AI SDK
type GeminiBackend struct {
	client *genai.Client
}

// NewGeminiBackend creates a Gemini API client for apiKey
func NewGeminiBackend(apiKey string) (*GeminiBackend, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiBackend{client: client}, nil
}

// GenerateText implements Backend
func (g *GeminiBackend) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: req.Temperature,
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini API")
	}

	return resp.Text(), nil
}

// GenerateSpeech implements Backend
func (g *GeminiBackend) GenerateSpeech(ctx context.Context, req SpeechRequest) (*Speech, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		req.Model,
		[]*genai.Content{
			{Parts: []*genai.Part{
				{Text: "Say this clearly: " + req.Text},
			}},
		},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{string(genai.ModalityAudio)},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
						VoiceName: req.Voice,
					},
				},
			},
		})
	if err != nil {
		return nil, fmt.Errorf("Gemini TTS error: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 || resp.Candidates[0].Content.Parts[0].InlineData == nil {
		return nil, fmt.Errorf("no audio in Gemini TTS response")
	}

	blob := resp.Candidates[0].Content.Parts[0].InlineData
	if len(blob.Data) == 0 || blob.MIMEType == "" {
		return nil, fmt.Errorf("incomplete audio in Gemini TTS response")
	}

	return &Speech{
		AudioData: base64.StdEncoding.EncodeToString(blob.Data),
		MIMEType:  blob.MIMEType,
	}, nil
}

// Name implements Backend
func (g *GeminiBackend) Name() string {
	return "gemini"
}
