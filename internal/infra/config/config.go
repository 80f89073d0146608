package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yanqian/campus-faqbot/internal/domain/faq"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	LLM     LLMConfig     `yaml:"llm"`
	FAQ     FAQConfig     `yaml:"faq"`
	Dataset DatasetConfig `yaml:"dataset"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
	CORS            CORSConfig      `yaml:"cors"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// LLMConfig contains settings for the OpenAI-compatible provider.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// FAQConfig controls the FAQ resolution behavior.
type FAQConfig struct {
	Institution         string         `yaml:"institution"`
	Location            string         `yaml:"location"`
	SimilarityThreshold float64        `yaml:"similarityThreshold"`
	Keywords            []string       `yaml:"keywords"`
	FallbackContact     ContactConfig  `yaml:"fallbackContact"`
	CacheTTL            time.Duration  `yaml:"cacheTtl"`
	CacheSize           int            `yaml:"cacheSize"`
	TopRecommendations  int            `yaml:"topRecommendations"`
	Redis               RedisConfig    `yaml:"redis"`
	Postgres            PostgresConfig `yaml:"postgres"`
}

// ContactConfig is the contact named when the stored one is unreadable.
type ContactConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// DatasetConfig points at the curated FAQ dataset used for seeding.
type DatasetConfig struct {
	Path   string       `yaml:"path"`
	Object ObjectConfig `yaml:"object"`
}

// ObjectConfig locates a dataset in S3-compatible storage.
type ObjectConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Key       string `yaml:"key"`
}

// Load reads configuration from a YAML file, a .env file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// FAQDomain converts the file level settings into the domain config.
func (c *Config) FAQDomain() faq.Config {
	return faq.Config{
		Institution:         c.FAQ.Institution,
		Location:            c.FAQ.Location,
		SimilarityThreshold: c.FAQ.SimilarityThreshold,
		Keywords:            c.FAQ.Keywords,
		FallbackContact:     faq.AdminContact{Name: c.FAQ.FallbackContact.Name, Email: c.FAQ.FallbackContact.Email},
		CacheTTL:            c.FAQ.CacheTTL,
		TopRecommendations:  c.FAQ.TopRecommendations,
		ProviderTimeout:     c.LLM.Timeout,
	}
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadDotEnv populates unset variables from DOTENV_PATH (default .env). A missing file is fine.
func loadDotEnv() error {
	path := os.Getenv("DOTENV_PATH")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORS.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := firstEnv("LLM_API_KEY", "GEMINI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("FAQ_INSTITUTION"); v != "" {
		cfg.FAQ.Institution = v
	}
	if v := os.Getenv("FAQ_SIMILARITY_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FAQ.SimilarityThreshold = parsed
		}
	}
	if v := os.Getenv("FAQ_KEYWORDS"); v != "" {
		cfg.FAQ.Keywords = splitList(v)
	}
	if v := os.Getenv("FAQ_FALLBACK_CONTACT_NAME"); v != "" {
		cfg.FAQ.FallbackContact.Name = v
	}
	if v := os.Getenv("FAQ_FALLBACK_CONTACT_EMAIL"); v != "" {
		cfg.FAQ.FallbackContact.Email = v
	}
	if v := os.Getenv("FAQ_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.FAQ.CacheTTL = parsed
		}
	}
	if v := os.Getenv("FAQ_RECOMMENDATIONS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.TopRecommendations = parsed
		}
	}
	if v := os.Getenv("FAQ_REDIS_ENABLED"); v != "" {
		cfg.FAQ.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("FAQ_REDIS_ADDR"); v != "" {
		cfg.FAQ.Redis.Addr = v
	}
	if v := firstEnv("FAQ_POSTGRES_DSN", "DATABASE_URL"); v != "" {
		cfg.FAQ.Postgres.DSN = v
	}
	if v := os.Getenv("FAQ_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("DATASET_S3_ENDPOINT"); v != "" {
		cfg.Dataset.Object.Endpoint = v
	}
	if v := os.Getenv("DATASET_S3_ACCESS_KEY"); v != "" {
		cfg.Dataset.Object.AccessKey = v
	}
	if v := os.Getenv("DATASET_S3_SECRET_KEY"); v != "" {
		cfg.Dataset.Object.SecretKey = v
	}
	if v := os.Getenv("DATASET_S3_BUCKET"); v != "" {
		cfg.Dataset.Object.Bucket = v
	}
	if v := os.Getenv("DATASET_S3_KEY"); v != "" {
		cfg.Dataset.Object.Key = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    45 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			CORS: CORSConfig{
				AllowedOrigins: []string{"*"},
			},
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
			Timeout:     30 * time.Second,
		},
		FAQ: FAQConfig{
			Institution:         faq.DefaultInstitution,
			Location:            faq.DefaultLocation,
			SimilarityThreshold: faq.DefaultSimilarityThreshold,
			Keywords:            append([]string(nil), faq.DefaultKeywords...),
			FallbackContact: ContactConfig{
				Name:  "Mr. Rajesh Kumar",
				Email: "rajesh.kumar@gat.ac.in",
			},
			CacheTTL:           6 * time.Hour,
			CacheSize:          512,
			TopRecommendations: 10,
			Redis: RedisConfig{
				Enabled: false,
				Prefix:  "faqbot",
			},
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Dataset: DatasetConfig{
			Object: ObjectConfig{
				Key: "faqs.yaml",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Timeout < 0 {
		return errors.New("llm.timeout cannot be negative")
	}
	if strings.TrimSpace(c.FAQ.Institution) == "" {
		return errors.New("faq.institution cannot be empty")
	}
	if c.FAQ.SimilarityThreshold <= 0 || c.FAQ.SimilarityThreshold > 1 {
		return errors.New("faq.similarityThreshold must be within (0, 1]")
	}
	if len(c.FAQ.Keywords) == 0 {
		return errors.New("faq.keywords cannot be empty")
	}
	if strings.TrimSpace(c.FAQ.FallbackContact.Name) == "" || strings.TrimSpace(c.FAQ.FallbackContact.Email) == "" {
		return errors.New("faq.fallbackContact requires name and email")
	}
	if c.FAQ.CacheTTL < 0 {
		return errors.New("faq.cacheTtl cannot be negative")
	}
	if c.FAQ.TopRecommendations < 0 {
		return errors.New("faq.topRecommendations cannot be negative")
	}
	if c.FAQ.Redis.Enabled && strings.TrimSpace(c.FAQ.Redis.Addr) == "" {
		return errors.New("faq.redis.addr cannot be empty when redis cache is enabled")
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
