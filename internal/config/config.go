// 서버 설정 로딩 유틸
//
// 환경변수는 프로세스 환경에서 읽고, 작업 디렉터리에 .env 파일이 있으면 먼저 로드한다.
// 이미 설정된 환경변수는 .env 값으로 덮어쓰지 않는다.

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	CORS      CORSConfig
	Auth      AuthConfig
	OIDC      OIDCConfig
	LLM       LLMConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host string
	Port string
}

func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

type AuthConfig struct {
	APIToken    string
	Secret      string
	TokenTTL    time.Duration
	UsersJSON   string
	UsersFile   string
	AllowSignup bool
}

type OIDCConfig struct {
	IssuerURL string
	ClientID  string
}

func (c OIDCConfig) Enabled() bool {
	return c.IssuerURL != ""
}

type LLMConfig struct {
	Provider    string
	HuggingFace HuggingFaceConfig
	Gemini      GeminiConfig
}

type HuggingFaceConfig struct {
	APIToken   string
	APIURL     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func (c RateLimitConfig) Enabled() bool {
	return c.RPS > 0 && c.Burst > 0
}

// Load reads .env (if present) and the process environment.
// Malformed numeric and boolean values are reported by the returned error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	var errs error

	ttlSeconds, err := getenvInt("KIDDOLAND_AUTH_TTL_SECONDS", 3600)
	errs = multierr.Append(errs, err)
	allowSignup, err := getenvBool("KIDDOLAND_AUTH_ALLOW_SIGNUP", false)
	errs = multierr.Append(errs, err)
	allowCredentials, err := getenvBool("CORS_ALLOW_CREDENTIALS", true)
	errs = multierr.Append(errs, err)
	hfTimeout, err := getenvDuration("HUGGINGFACE_TIMEOUT", 60*time.Second)
	errs = multierr.Append(errs, err)
	hfRetries, err := getenvInt("HUGGINGFACE_MAX_RETRIES", 2)
	errs = multierr.Append(errs, err)
	rps, err := getenvFloat("RATE_LIMIT_RPS", 1)
	errs = multierr.Append(errs, err)
	burst, err := getenvInt("RATE_LIMIT_BURST", 5)
	errs = multierr.Append(errs, err)

	cfg := Config{
		Server: ServerConfig{
			Host: getenv("HOST", "127.0.0.1"),
			Port: getenv("PORT", "8000"),
		},
		Log: LogConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "json"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
			AllowCredentials: allowCredentials,
		},
		Auth: AuthConfig{
			APIToken:    readEnv("API_TOKEN"),
			Secret:      readEnv("KIDDOLAND_AUTH_SECRET"),
			TokenTTL:    time.Duration(ttlSeconds) * time.Second,
			UsersJSON:   readEnv("KIDDOLAND_AUTH_USERS"),
			UsersFile:   readEnv("KIDDOLAND_AUTH_USERS_FILE"),
			AllowSignup: allowSignup,
		},
		OIDC: OIDCConfig{
			IssuerURL: readEnv("OIDC_ISSUER_URL"),
			ClientID:  readEnv("OIDC_CLIENT_ID"),
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(getenv("LLM_PROVIDER", ProviderHuggingFace)),
			HuggingFace: HuggingFaceConfig{
				APIToken:   readEnv("HUGGINGFACE_API_TOKEN"),
				APIURL:     readEnv("HUGGINGFACE_API_URL"),
				Model:      readEnv("HUGGINGFACE_MODEL"),
				Timeout:    hfTimeout,
				MaxRetries: hfRetries,
			},
			Gemini: GeminiConfig{
				APIKey: readEnv("GEMINI_API_KEY"),
				Model:  getenv("GEMINI_MODEL", "gemini-2.0-flash"),
			},
		},
		RateLimit: RateLimitConfig{
			RPS:   rps,
			Burst: burst,
		},
	}

	if errs != nil {
		return cfg, errs
	}
	return cfg, nil
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var errs error

	if c.Auth.Secret == "" {
		errs = multierr.Append(errs, errors.New("KIDDOLAND_AUTH_SECRET is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = multierr.Append(errs, errors.New("KIDDOLAND_AUTH_TTL_SECONDS must be positive"))
	}
	if c.OIDC.Enabled() && c.OIDC.ClientID == "" {
		errs = multierr.Append(errs, errors.New("OIDC_CLIENT_ID is required when OIDC_ISSUER_URL is set"))
	}

	switch c.LLM.Provider {
	case ProviderHuggingFace:
		errs = multierr.Append(errs, c.LLM.HuggingFace.Validate())
	case ProviderGemini:
		if c.LLM.Gemini.APIKey == "" {
			errs = multierr.Append(errs, errors.New("GEMINI_API_KEY is required"))
		}
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider))
	}

	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		errs = multierr.Append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative"))
	}

	return errs
}

// Validate lists the missing Hugging Face variables in a single error.
func (c HuggingFaceConfig) Validate() error {
	var missing []string
	if c.APIToken == "" {
		missing = append(missing, "HUGGINGFACE_API_TOKEN")
	}
	if c.APIURL == "" {
		missing = append(missing, "HUGGINGFACE_API_URL")
	}
	if c.Model == "" {
		missing = append(missing, "HUGGINGFACE_MODEL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required Hugging Face configuration: %s", strings.Join(missing, ", "))
	}
	if c.MaxRetries < 0 {
		return errors.New("HUGGINGFACE_MAX_RETRIES must not be negative")
	}
	return nil
}

func readEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getenv(key, fallback string) string {
	if val := readEnv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	val := readEnv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %q is not an integer", key, val)
	}
	return parsed, nil
}

func getenvFloat(key string, fallback float64) (float64, error) {
	val := readEnv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %q is not a number", key, val)
	}
	return parsed, nil
}

func getenvBool(key string, fallback bool) (bool, error) {
	val := readEnv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %q is not a boolean", key, val)
	}
	return parsed, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := readEnv(key)
	if val == "" {
		return fallback, nil
	}
	if seconds, err := strconv.Atoi(val); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %q is not a duration", key, val)
	}
	return parsed, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
