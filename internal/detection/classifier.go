// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package detection

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
	"github.com/sashabaranov/go-openai"
)

// Sample is what a classifier sees of one file
type Sample struct {
	Path     string
	Language string
	Content  string
}

// Classifier is an optional ML signal producer. Implementations must be safe
// for concurrent use; an error means "no ML signal", never a failed file.
type Classifier interface {
	Classify(ctx context.Context, sample Sample) (*aidebt.MLResult, error)
}

// maxSampleBytes bounds how much of a file is sent to the model
const maxSampleBytes = 12000

const classifierPrompt = `You estimate whether source code was produced by an AI coding assistant.
Reply with a JSON object: {"probability": <number 0..1>, "features": [<short strings naming the cues you used>]}.`

// OpenAIClassifier asks a chat model for an AI-generation probability
type OpenAIClassifier struct {
	client *openai.Client
	model  string
}

// NewOpenAIClassifier creates a classifier. baseURL may be empty to use the
// public API.
func NewOpenAIClassifier(apiKey, model, baseURL string) *OpenAIClassifier {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClassifier{client: openai.NewClientWithConfig(cfg), model: model}
}

type classifierReply struct {
	Probability float64  `json:"probability"`
	Features    []string `json:"features"`
}

func (c *OpenAIClassifier) Classify(ctx context.Context, sample Sample) (*aidebt.MLResult, error) {
	content := sample.Content
	if len(content) > maxSampleBytes {
		content = content[:maxSampleBytes]
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifierPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("File: %s (%s)\n\n%s", sample.Path, sample.Language, content)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0,
	})
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("classifier returned no choices")
	}

	var reply classifierReply
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return nil, fmt.Errorf("decoding classifier reply: %w", err)
	}

	return &aidebt.MLResult{
		Probability:  clamp01(reply.Probability),
		ModelVersion: resp.Model,
		Features:     reply.Features,
	}, nil
}
