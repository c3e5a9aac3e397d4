// Package vertex builds chat clients for Gemini models served by Vertex AI,
// using its OpenAI-compatible endpoint and Google OAuth2 credentials.
package vertex

import (
	"context"
	"fmt"
	"os"

	"github.com/samzhu/studio/pkg/providers/common"
	"github.com/samzhu/studio/pkg/types"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// DefaultLocation is used when the "location" property is unset
	DefaultLocation = "us-central1"

	CompletionsPath = "/chat/completions"
	EmbeddingsPath  = "/embeddings"

	// CloudPlatformScope is requested for service-account credentials
	CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

	// serviceAccountCredential stands in for the credential in bindings
	// built from a service-account key; the real token rotates.
	serviceAccountCredential = "service-account"
)

// Endpoint returns the OpenAI-compatible endpoint for a project and location
func Endpoint(projectID, location string) string {
	return fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1beta1/projects/%s/locations/%s/endpoints/openapi",
		location, projectID, location)
}

// Factory creates Vertex AI chat clients
type Factory struct {
	opts   common.Options
	helper *common.ConfigHelper
}

// NewFactory creates a Vertex AI factory
func NewFactory(opts common.Options) *Factory {
	return &Factory{
		opts:   opts,
		helper: common.NewConfigHelper("Vertex AI", types.ProviderTypeVertexAI),
	}
}

// Provider returns types.ProviderTypeVertexAI
func (f *Factory) Provider() types.ProviderType {
	return types.ProviderTypeVertexAI
}

// CreateClient requires "project-id" and one of "access-token",
// "credentials-json" or "credentials-file". Application default credentials
// are not consulted.
func (f *Factory) CreateClient(model types.LLMModel) (types.ChatClient, error) {
	if err := f.helper.CheckProvider(model); err != nil {
		return nil, err
	}
	projectID, err := f.helper.RequireProperty(model, common.PropProjectID, "project ID")
	if err != nil {
		return nil, err
	}
	if err := f.helper.RequireModel(model); err != nil {
		return nil, err
	}
	location := f.helper.Property(model, common.PropLocation, DefaultLocation)

	ts, credential, err := f.tokenSource(model)
	if err != nil {
		return nil, err
	}

	baseURL, err := f.helper.BaseURL(model, Endpoint(projectID, location))
	if err != nil {
		return nil, err
	}
	builder, err := f.helper.HTTPClientBuilder(f.opts, model)
	if err != nil {
		return nil, err
	}
	httpClient := builder.WithTokenSource(ts).Build()

	// the oauth2 transport replaces this bearer token on every request
	llm, err := openai.New(
		openai.WithToken(credential),
		openai.WithModel(model.Model),
		openai.WithBaseURL(baseURL),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, f.helper.WrapClientError(model, err)
	}

	return common.NewLLMClient(llm, types.Binding{
		Provider:        types.ProviderTypeVertexAI,
		BaseURL:         baseURL,
		CompletionsPath: CompletionsPath,
		EmbeddingsPath:  EmbeddingsPath,
		Model:           model.Model,
		Credential:      credential,
	}), nil
}

func (f *Factory) tokenSource(model types.LLMModel) (oauth2.TokenSource, string, error) {
	if token := f.helper.Property(model, common.PropAccessToken, ""); token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}), token, nil
	}

	var (
		data  []byte
		field string
	)
	switch {
	case f.helper.Property(model, common.PropCredentialsJSON, "") != "":
		field = common.PropCredentialsJSON
		data = []byte(f.helper.Property(model, common.PropCredentialsJSON, ""))
	case f.helper.Property(model, common.PropCredentialsFile, "") != "":
		field = common.PropCredentialsFile
		path := f.helper.Property(model, common.PropCredentialsFile, "")
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, "", f.credentialError(model, field, "Vertex AI credentials file could not be read", err)
		}
		data = raw
	default:
		return nil, "", types.NewConfigError(types.ErrCodeInvalidConfig,
			"Vertex AI access-token, credentials-json or credentials-file must be provided in model properties").
			WithProvider(types.ProviderTypeVertexAI).WithField(common.PropAccessToken).
			WithModel(types.ModelKindLLM, model.ID)
	}

	creds, err := google.CredentialsFromJSON(context.Background(), data, CloudPlatformScope)
	if err != nil {
		return nil, "", f.credentialError(model, field, "Vertex AI credentials are not valid", err)
	}
	return creds.TokenSource, serviceAccountCredential, nil
}

func (f *Factory) credentialError(model types.LLMModel, field, msg string, err error) error {
	return types.NewConfigError(types.ErrCodeInvalidConfig, msg).
		WithProvider(types.ProviderTypeVertexAI).WithField(field).
		WithModel(types.ModelKindLLM, model.ID).WithErr(err)
}
