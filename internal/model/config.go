package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Pipeline    PipelineConfig    `yaml:"pipeline" json:"pipeline"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// HTTPConfig controls source fetching over HTTP
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy" json:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" json:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" json:"no_proxy"`
	IgnoreRobots bool          `yaml:"ignore_robots" json:"ignore_robots"`
}

// CacheConfig controls oracle response caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// LLMConfig holds judgment oracle configuration
type LLMConfig struct {
	Provider          string  `yaml:"provider" json:"provider"` // openai, anthropic, ollama, ""
	Model             string  `yaml:"model" json:"model"`
	APIKey            string  `yaml:"-" json:"-"` // env only, never persisted
	BaseURL           string  `yaml:"base_url" json:"base_url"`
	Timeout           int     `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens         int     `yaml:"max_tokens" json:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
}

// PipelineConfig holds the deterministic pipeline knobs
type PipelineConfig struct {
	ChunkWords int `yaml:"chunk_words" json:"chunk_words"` // window size W
	TopK       int `yaml:"top_k" json:"top_k"`             // evidence snippets per claim
	MaxClaims  int `yaml:"max_claims" json:"max_claims"`   // extraction cap
}

// ConcurrencyConfig controls fan-out widths
type ConcurrencyConfig struct {
	// VerifyWorkers caps concurrent verification calls.
	// Zero or negative means one worker per claim.
	VerifyWorkers int `yaml:"verify_workers" json:"verify_workers"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "ProofStack/0.1 (+https://github.com/ppiankov/proofstack)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.proofstack/cache at runtime
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:          "", // disabled by default, fallback path only
			Timeout:           30,
			MaxTokens:         1000,
			RequestsPerSecond: 2,
		},
		Pipeline: PipelineConfig{
			ChunkWords: 120,
			TopK:       3,
			MaxClaims:  12,
		},
		Concurrency: ConcurrencyConfig{
			VerifyWorkers: 0,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
