package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/samzhu/studio/pkg/types"
	"github.com/tmc/langchaingo/llms"
)

// ErrEmptyResponse is returned when the model produced no choices
var ErrEmptyResponse = errors.New("model returned no choices")

// LLMClient adapts a langchaingo model to types.ChatClient
type LLMClient struct {
	model   llms.Model
	binding types.Binding
}

var _ types.ChatClient = (*LLMClient)(nil)

// NewLLMClient wraps model; binding describes where it sends requests
func NewLLMClient(model llms.Model, binding types.Binding) *LLMClient {
	return &LLMClient{model: model, binding: binding}
}

// Provider returns the provider the client talks to
func (c *LLMClient) Provider() types.ProviderType { return c.binding.Provider }

// ModelName returns the default model sent with every request
func (c *LLMClient) ModelName() string { return c.binding.Model }

// Binding returns endpoint and credential details
func (c *LLMClient) Binding() types.Binding { return c.binding }

// Model exposes the underlying langchaingo model for chains and agents
func (c *LLMClient) Model() llms.Model { return c.model }

// Call sends a single user prompt
func (c *LLMClient) Call(ctx context.Context, prompt string) (string, error) {
	return c.Chat(ctx, []types.ChatMessage{{Role: types.ChatRoleUser, Content: prompt}})
}

// Chat sends a conversation and returns the first choice's text
func (c *LLMClient) Chat(ctx context.Context, messages []types.ChatMessage) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		role, err := chatMessageType(m.Role)
		if err != nil {
			return "", err
		}
		content = append(content, llms.TextParts(role, m.Content))
	}

	resp, err := c.model.GenerateContent(ctx, content)
	if err != nil {
		return "", fmt.Errorf("%s chat completion failed: %w", c.binding.Provider, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}

func chatMessageType(role types.ChatRole) (llms.ChatMessageType, error) {
	switch role {
	case types.ChatRoleSystem:
		return llms.ChatMessageTypeSystem, nil
	case types.ChatRoleUser, "":
		return llms.ChatMessageTypeHuman, nil
	case types.ChatRoleAssistant:
		return llms.ChatMessageTypeAI, nil
	}
	return "", fmt.Errorf("unsupported chat role %q", role)
}
