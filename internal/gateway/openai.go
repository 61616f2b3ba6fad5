package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// openAIPCMRate is the sample rate of OpenAI's raw PCM speech output
const openAIPCMRate = 24000

// OpenAIBackend implements Backend with the OpenAI API
type OpenAIBackend struct {
	client *openai.Client
}

// NewOpenAIBackend creates an OpenAI client for apiKey
func NewOpenAIBackend(apiKey string) *OpenAIBackend {
	return &OpenAIBackend{client: openai.NewClient(apiKey)}
}

// GenerateText implements Backend. JSON object mode is not used because
// several operations expect a top-level array; the prompt asks for JSON.
func (o *OpenAIBackend) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	chat := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
	}
	if req.Temperature != nil {
		chat.Temperature = *req.Temperature
	}

	resp, err := o.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateSpeech implements Backend
func (o *OpenAIBackend) GenerateSpeech(ctx context.Context, req SpeechRequest) (*Speech, error) {
	response, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(req.Model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(req.Voice),
		ResponseFormat: openai.SpeechResponseFormatPcm,
		Speed:          1.0,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}

	return &Speech{
		AudioData: base64.StdEncoding.EncodeToString(data),
		MIMEType:  fmt.Sprintf("audio/L16;codec=pcm;rate=%d", openAIPCMRate),
	}, nil
}

// Name implements Backend
func (o *OpenAIBackend) Name() string {
	return "openai"
}
