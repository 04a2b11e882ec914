package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"gopkg.in/yaml.v3"
)

var ErrEmptyCompletion = errors.New("empty completion")

// PromptSpec is the generation setup for single-turn fallback answers.
type PromptSpec struct {
	System string `yaml:"system"`
	Style  struct {
		Temperature float32 `yaml:"temperature"`
		TopP        float32 `yaml:"top_p"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"style"`
}

// DefaultPromptSpec mirrors prompts/fallback.yaml.
func DefaultPromptSpec() PromptSpec {
	var spec PromptSpec
	spec.Style.Temperature = 1
	spec.Style.TopP = 0.95
	spec.Style.MaxTokens = 200
	return spec
}

// LoadPromptSpec reads a YAML prompt file over the defaults, so keys absent
// from the file keep their default and an explicit 0 is honoured. A missing
// file yields the defaults.
func LoadPromptSpec(path string) (PromptSpec, error) {
	spec := DefaultPromptSpec()
	if path == "" {
		return spec, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return spec, nil
		}
		return spec, err
	}
	file := DefaultPromptSpec()
	if err := yaml.Unmarshal(b, &file); err != nil {
		return spec, fmt.Errorf("parse %s: %w", path, err)
	}
	file.System = strings.TrimSpace(file.System)
	if file.Style.Temperature < 0 || file.Style.TopP < 0 || file.Style.MaxTokens < 0 {
		return spec, fmt.Errorf("parse %s: style values must not be negative", path)
	}
	return file, nil
}

// Completer answers one free-text query with no conversation history.
type Completer struct {
	spec   PromptSpec
	client *openai.Client
	model  string
}

// NewCompleter talks to any OpenAI-compatible chat completions endpoint.
// baseURL may be empty for api.openai.com.
func NewCompleter(apiKey, baseURL, model string, spec PromptSpec) *Completer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Completer{spec: spec, client: openai.NewClientWithConfig(cfg), model: model}
}

func (c *Completer) Complete(ctx context.Context, query string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if c.spec.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: c.spec.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: query})

	// The client drops a zero temperature from the request body.
	temperature := c.spec.Style.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		TopP:        c.spec.Style.TopP,
		MaxTokens:   c.spec.Style.MaxTokens,
		Messages:    messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
