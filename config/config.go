package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates all application configuration
type Config struct {
	AI      AIConfig      `yaml:"ai"`
	Search  SearchConfig  `yaml:"search"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	Maps    MapsConfig    `yaml:"maps"`
	Storage StorageConfig `yaml:"storage"`
	Reports ReportsConfig `yaml:"reports"`
}

type AIConfig struct {
	Plugin    string          `yaml:"plugin" env:"AI_PLUGIN" env-default:"dashscope"`
	DashScope DashScopeConfig `yaml:"dashscope"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Ollama    OllamaConfig    `yaml:"ollama"`
}

type DashScopeConfig struct {
	APIKey  string `yaml:"api_key" env:"DASHSCOPE_API_KEY"`
	BaseURL string `yaml:"base_url" env:"DASHSCOPE_BASE_URL" env-default:"https://dashscope.aliyuncs.com/compatible-mode/v1"`
	Model   string `yaml:"model" env:"DASHSCOPE_MODEL" env-default:"qwen-plus"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
}

type OllamaConfig struct {
	Model   string `yaml:"model" env:"OLLAMA_MODEL" env-default:"qwen3:4b"`
	BaseURL string `yaml:"base_url" env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434"`
}

type SearchConfig struct {
	TavilyAPIKey string `yaml:"tavily_api_key" env:"TAVILY_API_KEY"`
	TimeoutSecs  int    `yaml:"timeout_secs" env:"SEARCH_TIMEOUT_SECS" env-default:"30"`
	MaxResults   int    `yaml:"max_results" env:"SEARCH_MAX_RESULTS" env-default:"5"`
}

type SMTPConfig struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM"`
	UseTLS   bool   `yaml:"use_tls" env:"SMTP_USE_TLS" env-default:"true"`
}

type MapsConfig struct {
	APIKey string `yaml:"api_key" env:"GOOGLE_MAPS_API_KEY"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	DSN    string `yaml:"dsn" env:"STORAGE_DSN" env-default:"newsdesk.db"`
}

type ReportsConfig struct {
	Dir string `yaml:"dir" env:"REPORTS_DIR" env-default:"reports"`
}

// Load reads configuration from config.yaml and environment variables
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	var cfg Config

	// Read config.yaml if present, then override with env vars.
	// When the file is missing we fall back to env vars alone.
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the selected AI plugin has its credentials set.
// Tool credentials (Tavily, SMTP, Maps) are checked by the plugins that
// need them so the REPL can still run with a reduced tool set.
func (c *Config) Validate() error {
	switch c.AI.Plugin {
	case "dashscope":
		if c.AI.DashScope.APIKey == "" {
			return fmt.Errorf("DASHSCOPE_API_KEY must be set (or set AI_PLUGIN=gemini|ollama)")
		}
		if c.AI.DashScope.BaseURL == "" {
			return fmt.Errorf("DASHSCOPE_BASE_URL must be set")
		}
		if c.AI.DashScope.Model == "" {
			return fmt.Errorf("DASHSCOPE_MODEL must be set")
		}
	case "gemini":
		if c.AI.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY must be set (or set AI_PLUGIN=dashscope|ollama)")
		}
	case "ollama":
		// Local server, no credentials.
	default:
		return fmt.Errorf("unknown AI plugin %q", c.AI.Plugin)
	}
	return nil
}
