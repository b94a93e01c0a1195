package env

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"

	SearchDuckDuckGo = "duckduckgo"
	SearchTavily     = "tavily"
	SearchSerpAPI    = "serpapi"
)

var ErrMissingCredential = errors.New("missing API credential")

type Config struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"openrouter"`

	OpenRouterAPIKey  string `env:"OPENROUTER_API_KEY"`
	OpenRouterModel   string `env:"OPENROUTER_MODEL_NAME" envDefault:"anthropic/claude-3.5-sonnet"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`

	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL" envDefault:"claude-3-5-sonnet-20241022"`

	SearchProvider string `env:"SEARCH_PROVIDER" envDefault:"duckduckgo"`
	TavilyAPIKey   string `env:"TAVILY_API_KEY"`
	SerpAPIKey     string `env:"SERPAPI_API_KEY"`

	WikiMaxChars int    `env:"WIKI_MAX_CHARS" envDefault:"1000"`
	SaveFile     string `env:"SAVE_FILE" envDefault:"research_output.txt"`

	MaxSteps   int           `env:"AGENT_MAX_STEPS" envDefault:"15"`
	RunTimeout time.Duration `env:"RUN_TIMEOUT" envDefault:"30m"`

	LogDir  string `env:"LOG_DIR" envDefault:"log"`
	LogHTTP bool   `env:"LOG_HTTP" envDefault:"false"`
	Verbose bool   `env:"VERBOSE" envDefault:"false"`
}

// Validate checks that the selected providers have what they need.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenRouter:
		if c.OpenRouterAPIKey == "" {
			return fmt.Errorf("%w: OPENROUTER_API_KEY is not set", ErrMissingCredential)
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrMissingCredential)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider)
	}

	switch c.SearchProvider {
	case SearchDuckDuckGo:
	case SearchTavily:
		if c.TavilyAPIKey == "" {
			return fmt.Errorf("%w: TAVILY_API_KEY is not set", ErrMissingCredential)
		}
	case SearchSerpAPI:
		if c.SerpAPIKey == "" {
			return fmt.Errorf("%w: SERPAPI_API_KEY is not set", ErrMissingCredential)
		}
	default:
		return fmt.Errorf("unknown SEARCH_PROVIDER %q", c.SearchProvider)
	}

	if c.MaxSteps < 1 {
		return fmt.Errorf("AGENT_MAX_STEPS must be positive, got %d", c.MaxSteps)
	}
	return nil
}

type EnvService struct {
	environment map[string]string
}

// NewEnvService loads .env and .env.$APP_ENV into the process environment.
func NewEnvService() *EnvService {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Info: no .env file with secrets found (this is OK for CI/CD)")
	}

	envFile := fmt.Sprintf(".env.%s", appEnv)
	if err := godotenv.Overload(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load %s: %v", envFile, err)
	}

	return &EnvService{}
}

// NewEnvServiceFrom reads dotenv-formatted content instead of the process
// environment.
func NewEnvServiceFrom(content string) (*EnvService, error) {
	vars, err := godotenv.Unmarshal(content)
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &EnvService{environment: vars}, nil
}

// Parse builds the run configuration without validating it, so callers can
// apply overrides first.
func (e *EnvService) Parse() (Config, error) {
	var cfg Config
	opts := env.Options{}
	if e.environment != nil {
		opts.Environment = e.environment
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	cfg.Provider = normalize(cfg.Provider)
	cfg.SearchProvider = normalize(cfg.SearchProvider)
	return cfg, nil
}

// Load builds the run configuration and validates it.
func (e *EnvService) Load() (Config, error) {
	cfg, err := e.Parse()
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
