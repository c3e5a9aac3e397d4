package types

import "context"

// ChatRole is the author of a chat message
type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is a single text message in a conversation
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// Binding describes where a client sends requests and with which
// credential. It is informational; the wire protocol belongs to the
// underlying client library.
type Binding struct {
	Provider        ProviderType `json:"provider"`
	BaseURL         string       `json:"base_url"`
	CompletionsPath string       `json:"completions_path"`
	EmbeddingsPath  string       `json:"embeddings_path,omitempty"`
	Model           string       `json:"model"`
	Credential      string       `json:"-"`
}

// CompletionsURL returns BaseURL joined with CompletionsPath
func (b Binding) CompletionsURL() string {
	return b.BaseURL + b.CompletionsPath
}

// ChatClient is the uniform client produced by every ClientFactory
type ChatClient interface {
	// Provider returns the provider the client talks to
	Provider() ProviderType

	// ModelName returns the default model sent with every request
	ModelName() string

	// Binding returns endpoint and credential details
	Binding() Binding

	// Call sends a single user prompt and returns the completion text
	Call(ctx context.Context, prompt string) (string, error)

	// Chat sends a conversation and returns the completion text
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
}

// ClientFactory builds chat clients for one provider
type ClientFactory interface {
	// Provider returns the fixed provider tag this factory serves
	Provider() ProviderType

	// CreateClient validates the descriptor and returns a client bound to
	// its endpoint, credential and model. No network call is made.
	CreateClient(model LLMModel) (ChatClient, error)
}

// Embedder turns text into vectors
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
