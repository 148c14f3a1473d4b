package llm

import "context"

// Judge is the injectable judgment oracle capability. Implementations are
// nondeterministic external dependencies (LLM APIs); callers own validation
// of the returned text and must degrade to deterministic fallbacks on error.
type Judge interface {
	// Name returns the provider name
	Name() string

	// Judge sends a prompt and returns the raw response text
	Judge(ctx context.Context, req JudgeRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// JudgeRequest contains the input for one oracle call
type JudgeRequest struct {
	// System sets the system message (optional)
	System string

	// Prompt is the user-facing prompt text
	Prompt string

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int

	// JSONMode requests a strict JSON object response where the provider
	// supports it; validation still happens caller-side either way
	JSONMode bool
}

// Config holds judgment oracle configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerSecond caps the oracle call rate (0 = unlimited)
	RequestsPerSecond float64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "", // Disabled by default
		Timeout:           30,
		MaxTokens:         1000,
		RequestsPerSecond: 2,
	}
}
