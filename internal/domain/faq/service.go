package faq

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/yanqian/campus-faqbot/pkg/errors"
	"github.com/yanqian/campus-faqbot/pkg/metrics"
	"github.com/yanqian/campus-faqbot/pkg/util"
)

// Service resolves chat messages against the institution's FAQ knowledge base.
type Service interface {
	// Resolve always returns a user-facing reply; failures are folded into fixed messages.
	Resolve(ctx context.Context, message string) string
	// Answer is Resolve with the metadata the HTTP API exposes.
	Answer(ctx context.Context, req Request) Response
	Trending(ctx context.Context) ([]TrendingQuery, error)
}

type service struct {
	cfg       Config
	kb        KnowledgeBase
	generator Generator
	store     Store
	gate      TopicGate
	logger    *slog.Logger
	now       util.Clock
}

// NewService wires up the FAQ domain.
func NewService(cfg Config, kb KnowledgeBase, generator Generator, store Store, logger *slog.Logger) Service {
	cfg = cfg.withDefaults()
	return &service{
		cfg:       cfg,
		kb:        kb,
		generator: generator,
		store:     store,
		gate:      NewTopicGate(cfg.Keywords),
		logger:    logger.With("component", "faq.service"),
		now:       util.NowUTC,
	}
}

// phaseResult is what each resolution phase hands back to Answer. A non-nil err means the
// query ends in the error reply regardless of the other fields.
type phaseResult struct {
	reply   string
	source  Source
	matched string
	score   float64
	usage   *metrics.TokenUsage
	contact *AdminContact
	err     error
}

func (s *service) Resolve(ctx context.Context, message string) string {
	return s.Answer(ctx, Request{Message: message}).Reply
}

func (s *service) Answer(ctx context.Context, req Request) Response {
	start := s.now()

	res := s.resolve(ctx, req.Message)
	if res.err != nil {
		s.logger.Error("faq resolution failed", "error", res.err)
		res = phaseResult{
			reply:  ErrorMessage(s.errorContact(ctx, res.contact)),
			source: SourceError,
		}
	} else {
		s.logger.Info("faq resolved", "source", res.source, "score", res.score)
		s.recordQuery(ctx, req.Message)
	}

	return Response{
		Reply:           res.reply,
		Source:          res.source,
		MatchedQuestion: res.matched,
		Score:           res.score,
		DurationMs:      util.MillisSince(s.now, start),
		TokenUsage:      res.usage,
	}
}

func (s *service) Trending(ctx context.Context) ([]TrendingQuery, error) {
	if s.store == nil {
		return nil, nil
	}
	recs, err := s.store.TopQueries(ctx, s.cfg.TopRecommendations)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStore, "failed to load trending queries", err)
	}
	return recs, nil
}

func (s *service) resolve(ctx context.Context, message string) (res phaseResult) {
	var contact *AdminContact
	defer func() {
		if r := recover(); r != nil {
			res = phaseResult{contact: contact, err: fmt.Errorf("panic during resolution: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return phaseResult{err: err}
	}

	records, err := s.kb.ListFAQs(ctx)
	if err != nil {
		return phaseResult{err: apperrors.Wrap(apperrors.CodeKnowledgeBase, "list faqs failed", err)}
	}
	if match := FindBestMatch(message, records, s.cfg.SimilarityThreshold); match.Found {
		return phaseResult{
			reply:   match.Record.Answer,
			source:  SourceFAQ,
			matched: match.Record.Question,
			score:   match.Score,
		}
	}

	loaded, err := s.loadContact(ctx)
	if err != nil {
		return phaseResult{err: err}
	}
	contact = &loaded

	if !s.gate.IsInDomain(message) {
		return phaseResult{
			reply:   RefusalMessage(s.cfg.Institution, loaded),
			source:  SourceRefusal,
			contact: contact,
		}
	}

	if err := ctx.Err(); err != nil {
		return phaseResult{contact: contact, err: err}
	}
	res = s.fallbackPhase(ctx, message, loaded)
	res.contact = contact
	return res
}

func (s *service) fallbackPhase(ctx context.Context, message string, contact AdminContact) phaseResult {
	key := normalizeQuestion(message)
	if cached, ok := s.cachedAnswer(ctx, key); ok {
		return phaseResult{reply: cached.Answer, source: SourceCache}
	}

	out := s.askExternal(ctx, message, contact)
	if out.failed {
		s.logger.Warn("ai fallback failed", "error", out.err)
		return phaseResult{reply: out.reply, source: SourceAIUnavailable}
	}

	s.cacheAnswer(ctx, key, message, out.reply)
	return phaseResult{reply: out.reply, source: SourceAI, usage: out.usage}
}

func (s *service) loadContact(ctx context.Context) (AdminContact, error) {
	contact, err := s.kb.AdminContact(ctx)
	if err != nil {
		return AdminContact{}, apperrors.Wrap(apperrors.CodeKnowledgeBase, "admin contact lookup failed", err)
	}
	if contact.IsZero() {
		return AdminContact{}, apperrors.Wrap(apperrors.CodeKnowledgeBase, "admin contact is incomplete", ErrContactNotFound)
	}
	return contact, nil
}

// errorContact picks the contact named in the error reply: the one already loaded, a fresh
// read, or the configured fallback.
func (s *service) errorContact(ctx context.Context, loaded *AdminContact) (contact AdminContact) {
	if loaded != nil {
		return *loaded
	}
	contact = s.cfg.FallbackContact
	if ctx.Err() != nil {
		return contact
	}
	defer func() {
		if r := recover(); r != nil {
			contact = s.cfg.FallbackContact
		}
	}()
	if fresh, err := s.loadContact(ctx); err == nil {
		return fresh
	}
	return contact
}

func (s *service) cachedAnswer(ctx context.Context, key string) (AnswerRecord, bool) {
	if s.store == nil || s.cfg.CacheTTL <= 0 || key == "" {
		return AnswerRecord{}, false
	}
	cached, ok, err := s.store.GetAnswer(ctx, key)
	if err != nil {
		s.logger.Warn("faq cache lookup failed", "error", err)
		return AnswerRecord{}, false
	}
	return cached, ok
}

func (s *service) cacheAnswer(ctx context.Context, key, question, answer string) {
	if s.store == nil || s.cfg.CacheTTL <= 0 || key == "" {
		return
	}
	record := AnswerRecord{
		Key:       key,
		Question:  question,
		Answer:    answer,
		CreatedAt: s.now(),
	}
	if err := s.store.SaveAnswer(ctx, record, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("faq cache save failed", "error", err)
	}
}

func (s *service) recordQuery(ctx context.Context, message string) {
	if s.store == nil {
		return
	}
	normalized := normalizeQuestion(message)
	if normalized == "" {
		return
	}
	if err := s.store.IncrementQuery(ctx, normalized, message); err != nil {
		s.logger.Warn("faq trending increment failed", "error", err)
	}
}
