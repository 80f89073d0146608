package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/campus-faqbot/internal/domain/faq"
	"github.com/yanqian/campus-faqbot/internal/infra/config"
	"github.com/yanqian/campus-faqbot/internal/infra/dataset"
	"github.com/yanqian/campus-faqbot/internal/infra/faqrepo"
	"github.com/yanqian/campus-faqbot/internal/infra/faqstore"
	"github.com/yanqian/campus-faqbot/internal/infra/llm/openai"
)

// Repository is a knowledge base that can also be refreshed in bulk.
type Repository interface {
	faq.KnowledgeBase
	faq.Maintainer
}

// ProvideFAQConfig maps the loaded configuration onto the domain config.
func ProvideFAQConfig(cfg *config.Config) faq.Config {
	return cfg.FAQDomain()
}

// ConnectPostgres opens the pool, pings it and makes sure the tables exist.
func ConnectPostgres(ctx context.Context, cfg *config.Config) (*faqrepo.PostgresRepository, func(), error) {
	dsn := strings.TrimSpace(cfg.FAQ.Postgres.DSN)
	if dsn == "" {
		return nil, nil, errors.New("faq postgres dsn not set")
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if cfg.FAQ.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.FAQ.Postgres.MaxConns
	}
	if cfg.FAQ.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.FAQ.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("init postgres pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres ping: %w", err)
	}
	repo := faqrepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(pingCtx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo, pool.Close, nil
}

// ProvideKnowledgeBase prefers Postgres and falls back to an in-memory copy of the curated dataset.
func ProvideKnowledgeBase(cfg *config.Config, logger *slog.Logger) (faq.KnowledgeBase, func(), error) {
	ctx := context.Background()
	if strings.TrimSpace(cfg.FAQ.Postgres.DSN) != "" {
		repo, cleanup, err := ConnectPostgres(ctx, cfg)
		if err == nil {
			logger.Info("faq postgres repository enabled")
			return repo, cleanup, nil
		}
		logger.Error("postgres unavailable, using memory repository", "error", err)
	} else {
		logger.Info("faq postgres dsn not set, using memory repository")
	}

	ds, err := LoadDataset(ctx, cfg, logger, "", "")
	if err != nil {
		return nil, nil, err
	}
	repo := faqrepo.NewMemoryRepository()
	if err := dataset.Seed(ctx, repo, ds); err != nil {
		return nil, nil, err
	}
	logger.Info("faq memory repository loaded", "faqs", len(ds.FAQs))
	return repo, func() {}, nil
}

// LoadDataset resolves the dataset to seed from: an explicit file, an object key, the
// configured path or object, and finally the embedded default.
func LoadDataset(ctx context.Context, cfg *config.Config, logger *slog.Logger, path, objectKey string) (dataset.Dataset, error) {
	if path == "" && objectKey == "" {
		path = cfg.Dataset.Path
	}
	if path == "" && objectKey == "" && cfg.Dataset.Object.Bucket != "" {
		objectKey = cfg.Dataset.Object.Key
	}

	switch {
	case path != "":
		logger.Info("loading dataset file", "path", path)
		return dataset.LoadFile(path)
	case objectKey != "":
		src, err := dataset.NewObjectSource(dataset.ObjectOptions{
			Endpoint:  cfg.Dataset.Object.Endpoint,
			AccessKey: cfg.Dataset.Object.AccessKey,
			SecretKey: cfg.Dataset.Object.SecretKey,
			Bucket:    cfg.Dataset.Object.Bucket,
			Region:    cfg.Dataset.Object.Region,
		}, logger)
		if err != nil {
			return dataset.Dataset{}, err
		}
		logger.Info("loading dataset object", "bucket", cfg.Dataset.Object.Bucket, "key", objectKey)
		return src.Fetch(ctx, objectKey)
	default:
		return dataset.Default()
	}
}

// ProvideFAQStore returns the Valkey store when enabled and reachable, otherwise an in-process one.
func ProvideFAQStore(cfg *config.Config, logger *slog.Logger) (faq.Store, func()) {
	memory := func() (faq.Store, func()) {
		return faqstore.NewMemoryStore(cfg.FAQ.CacheSize), func() {}
	}
	if !cfg.FAQ.Redis.Enabled {
		return memory()
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return memory()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return memory()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return memory()
	}
	logger.Info("faq valkey store enabled", "addr", cfg.FAQ.Redis.Addr)
	return faqstore.NewValkeyStore(client, cfg.FAQ.Redis.Prefix), client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.FAQ.Redis.Addr, "://") {
		return valkey.ParseURL(cfg.FAQ.Redis.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.FAQ.Redis.Addr}}, nil
}

// ProvideGenerator builds the provider client. Without an API key every fallback answers with
// the apology.
func ProvideGenerator(cfg *config.Config, logger *slog.Logger) (faq.Generator, error) {
	client, err := openai.NewClient(openai.Options{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	}, logger)
	if errors.Is(err, openai.ErrNotConfigured) {
		logger.Warn("llm api key not set, ai fallback disabled")
		return openai.Unavailable{}, nil
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}
