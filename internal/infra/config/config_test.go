package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/campus-faqbot/internal/domain/faq"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DOTENV_PATH", filepath.Join(dir, "missing.env"))
	for _, key := range []string{"LLM_API_KEY", "GEMINI_API_KEY", "FAQ_POSTGRES_DSN", "DATABASE_URL", "FAQ_SIMILARITY_THRESHOLD", "FAQ_KEYWORDS"} {
		t.Setenv(key, "")
	}
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, faq.DefaultSimilarityThreshold, cfg.FAQ.SimilarityThreshold)
	require.Equal(t, faq.DefaultKeywords, cfg.FAQ.Keywords)
	require.Equal(t, faq.DefaultInstitution, cfg.FAQ.Institution)
	require.Equal(t, []string{"*"}, cfg.HTTP.CORS.AllowedOrigins)
	require.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	require.Empty(t, cfg.LLM.APIKey)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
faq:
  institution: Test Institute
  similarityThreshold: 0.8
  keywords: [hostel, fee]
llm:
  model: file-model
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_MODEL", "env-model")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Test Institute", cfg.FAQ.Institution)
	require.Equal(t, 0.8, cfg.FAQ.SimilarityThreshold)
	require.Equal(t, []string{"hostel", "fee"}, cfg.FAQ.Keywords)
	require.Equal(t, "env-model", cfg.LLM.Model)
	require.Equal(t, "gemini-key", cfg.LLM.APIKey)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("LLM_API_KEY=from-dotenv\nFAQ_KEYWORDS=library, canteen\n"), 0o600))
	t.Setenv("DOTENV_PATH", envPath)
	// godotenv never overrides variables that are already set, even to empty.
	require.NoError(t, os.Unsetenv("LLM_API_KEY"))
	require.NoError(t, os.Unsetenv("FAQ_KEYWORDS"))
	t.Cleanup(func() {
		_ = os.Unsetenv("LLM_API_KEY")
		_ = os.Unsetenv("FAQ_KEYWORDS")
	})

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.LLM.APIKey)
	require.Equal(t, []string{"library", "canteen"}, cfg.FAQ.Keywords)
}

func TestLoad_PostgresDSNFallback(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/faq")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost/faq", cfg.FAQ.Postgres.DSN)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"threshold above one", func(c *Config) { c.FAQ.SimilarityThreshold = 1.2 }},
		{"threshold zero", func(c *Config) { c.FAQ.SimilarityThreshold = 0 }},
		{"no keywords", func(c *Config) { c.FAQ.Keywords = nil }},
		{"missing fallback email", func(c *Config) { c.FAQ.FallbackContact.Email = "" }},
		{"empty model", func(c *Config) { c.LLM.Model = " " }},
		{"redis without addr", func(c *Config) { c.FAQ.Redis.Enabled = true }},
		{"rate limit without burst", func(c *Config) { c.HTTP.RateLimit.Burst = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
	require.NoError(t, defaultConfig().Validate())
}

func TestFAQDomain(t *testing.T) {
	cfg := defaultConfig()
	cfg.LLM.Timeout = 3 * time.Second

	domain := cfg.FAQDomain()
	require.Equal(t, faq.AdminContact{Name: "Mr. Rajesh Kumar", Email: "rajesh.kumar@gat.ac.in"}, domain.FallbackContact)
	require.Equal(t, 3*time.Second, domain.ProviderTimeout)
	require.Equal(t, cfg.FAQ.SimilarityThreshold, domain.SimilarityThreshold)
}
