package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	defaultGeminiModel    = "gemini-2.0-flash"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultTemperature    = 0.4
	defaultLLMTimeout     = 60 * time.Second
	defaultMaxUploadBytes = 10 << 20
	defaultExtractCache   = 32
)

// Config holds application configuration. It is built once by Load and
// treated as read-only afterwards.
type Config struct {
	Port             string
	Env              string
	CORSAllowOrigin  []string
	LLM              LLM
	MaxUploadBytes   int64
	ExtractCacheSize int
	LogLevel         string
}

// LLM configures the hosted model used for analysis.
type LLM struct {
	Provider      string
	Model         string
	APIKey        string
	CredentialEnv string
	BaseURL       string
	Temperature   float64
	Timeout       time.Duration
}

// HasCredential reports whether an API key was configured.
func (l LLM) HasCredential() bool {
	return strings.TrimSpace(l.APIKey) != ""
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files; existing variables are not overridden.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LLM:              LoadLLM(""),
		MaxUploadBytes:   getInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		ExtractCacheSize: getInt("EXTRACT_CACHE_SIZE", defaultExtractCache),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

// LoadLLM reads model settings for provider; an empty provider reads LLM_PROVIDER.
func LoadLLM(provider string) LLM {
	if strings.TrimSpace(provider) == "" {
		provider = getEnv("LLM_PROVIDER", ProviderGemini)
	}
	provider = normalizeProvider(provider)

	credentialEnv := "GOOGLE_API_KEY"
	model := defaultGeminiModel
	if provider == ProviderOpenAI {
		credentialEnv = "OPENAI_API_KEY"
		model = defaultOpenAIModel
	}

	apiKey := strings.TrimSpace(os.Getenv("LLM_API_KEY"))
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv(credentialEnv))
	}

	return LLM{
		Provider:      provider,
		Model:         getEnv("LLM_MODEL", model),
		APIKey:        apiKey,
		CredentialEnv: credentialEnv,
		BaseURL:       strings.TrimSpace(os.Getenv("LLM_BASE_URL")),
		Temperature:   getFloat64("LLM_TEMPERATURE", defaultTemperature),
		Timeout:       time.Duration(getInt("LLM_TIMEOUT_SECONDS", int(defaultLLMTimeout/time.Second))) * time.Second,
	}
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: ignoring %s: %v", path, err)
		}
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		log.Printf("config: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return parsed
}

func getInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		log.Printf("config: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return parsed
}

func getFloat64(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 || parsed > 2 {
		log.Printf("config: invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return ProviderOpenAI
	case "gemini", "google", "":
		return ProviderGemini
	default:
		return strings.ToLower(strings.TrimSpace(raw))
	}
}
