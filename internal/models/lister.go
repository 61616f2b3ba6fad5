package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// ErrNoAPIKey is returned when listing without a key
var ErrNoAPIKey = errors.New("API key not found: set GEMINI_API_KEY (or OPENAI_API_KEY) or run 'vocabbuilder login'")

// Model is one model offered by a provider
type Model struct {
	ID      string
	Name    string
	Actions []string
}

// Category groups models by use
type Category int

const (
	CategoryText Category = iota
	CategorySpeech
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategoryText:
		return "Text Generation Models (vocabulary, IELTS, feedback)"
	case CategorySpeech:
		return "Text-to-Speech (TTS) Models"
	default:
		return "Other Models"
	}
}

// Source fetches the raw model list of a provider
type Source interface {
	ListModels(ctx context.Context) ([]Model, error)
}

// Lister handles listing available models
type Lister struct {
	provider string
	source   Source
}

// NewLister creates a model lister for provider ("gemini" or "openai")
func NewLister(ctx context.Context, provider, apiKey string) (*Lister, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	switch provider {
	case "", "gemini":
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return &Lister{provider: "gemini", source: &geminiSource{client: client}}, nil
	case "openai":
		return &Lister{provider: "openai", source: &openAISource{client: openai.NewClient(apiKey)}}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", provider)
	}
}

// NewListerWithSource creates a lister on top of an existing source
func NewListerWithSource(provider string, source Source) *Lister {
	return &Lister{provider: provider, source: source}
}

// Categorize sorts model ids into categories. Ids in every category are
// sorted.
func Categorize(models []Model) map[Category][]string {
	result := map[Category][]string{}
	for _, model := range models {
		id := strings.TrimPrefix(model.ID, "models/")
		category := CategoryOther
		switch {
		case strings.Contains(id, "tts") || strings.Contains(id, "audio"):
			category = CategorySpeech
		case strings.Contains(id, "embedding") || strings.Contains(id, "dall-e") || strings.Contains(id, "imagen"):
			category = CategoryOther
		case strings.Contains(id, "gemini") || strings.Contains(id, "gpt") || strings.Contains(id, "chat") ||
			hasAction(model.Actions, "generateContent"):
			category = CategoryText
		}
		result[category] = append(result[category], id)
	}
	for _, ids := range result {
		sort.Strings(ids)
	}
	return result
}

func hasAction(actions []string, action string) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// ListAvailableModels prints all available models categorized by type
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	models, err := l.source.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	categories := Categorize(models)
	fmt.Fprintf(w, "Available %s Models:\n", l.provider)
	for _, category := range []Category{CategoryText, CategorySpeech, CategoryOther} {
		fmt.Fprintf(w, "\n%s:\n", category)
		ids := categories[category]
		if len(ids) == 0 {
			fmt.Fprintln(w, "  No models found")
			continue
		}
		for _, id := range ids {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}
	return nil
}

type geminiSource struct {
	client *genai.Client
}

func (g *geminiSource) ListModels(ctx context.Context) ([]Model, error) {
	var models []Model
	for m, err := range g.client.Models.All(ctx) {
		if err != nil {
			return nil, err
		}
		models = append(models, Model{ID: m.Name, Name: m.DisplayName, Actions: m.SupportedActions})
	}
	return models, nil
}

type openAISource struct {
	client *openai.Client
}

func (o *openAISource) ListModels(ctx context.Context) ([]Model, error) {
	list, err := o.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	models := make([]Model, 0, len(list.Models))
	for _, m := range list.Models {
		models = append(models, Model{ID: m.ID, Name: m.ID})
	}
	return models, nil
}
