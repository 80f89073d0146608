package faq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/campus-faqbot/pkg/metrics"
)

var testRecords = []Record{
	{Question: "When was GAT established?", Answer: "GAT was established in 2001."},
	{Question: "What is the hostel fee?", Answer: "Hostel fees are around ₹80,000 per year."},
	{Question: "Are scholarships available?", Answer: "Yes, both government and private scholarships are available."},
}

func TestResolveReturnsStoredAnswerForExactQuestion(t *testing.T) {
	gen := &stubGenerator{}
	svc := newTestService(t, &stubKB{records: testRecords, contact: testContact}, gen, newStubStore())

	for _, q := range []string{"What is the hostel fee?", "what is the HOSTEL fee?"} {
		require.Equal(t, "Hostel fees are around ₹80,000 per year.", svc.Resolve(context.Background(), q))
	}
	require.Zero(t, gen.calls)
}

func TestAnswerReportsMatchMetadata(t *testing.T) {
	svc := newTestService(t, &stubKB{records: testRecords, contact: testContact}, &stubGenerator{}, newStubStore())

	resp := svc.Answer(context.Background(), Request{Message: "What is the hostl fee?"})
	require.Equal(t, SourceFAQ, resp.Source)
	require.Equal(t, "What is the hostel fee?", resp.MatchedQuestion)
	require.GreaterOrEqual(t, resp.Score, DefaultSimilarityThreshold)
	require.Nil(t, resp.TokenUsage)
}

func TestResolveRefusesOffTopicQuery(t *testing.T) {
	gen := &stubGenerator{}
	svc := newTestService(t, &stubKB{records: testRecords, contact: testContact}, gen, newStubStore())

	got := svc.Resolve(context.Background(), "What's the weather today?")
	require.Equal(t, RefusalMessage(DefaultInstitution, testContact), got)
	require.Contains(t, got, testContact.Name)
	require.Contains(t, got, testContact.Email)
	require.Zero(t, gen.calls)
}

func TestResolveEmptyQueryIsRefused(t *testing.T) {
	svc := newTestService(t, &stubKB{records: testRecords, contact: testContact}, &stubGenerator{}, newStubStore())
	require.Equal(t, RefusalMessage(DefaultInstitution, testContact), svc.Resolve(context.Background(), ""))
}

func TestResolveDelegatesInDomainQuery(t *testing.T) {
	gen := &stubGenerator{
		generateFn: func(ctx context.Context, prompt string) (Completion, error) {
			return Completion{Text: "  Highest package is 22 LPA.\n", Usage: metrics.TokenUsage{PromptTokens: 90, CompletionTokens: 8}}, nil
		},
	}
	svc := newTestService(t, &stubKB{records: testRecords, contact: testContact}, gen, newStubStore())

	resp := svc.Answer(context.Background(), Request{Message: "Tell me about placements and average package"})
	require.Equal(t, "Highest package is 22 LPA.", resp.Reply)
	require.Equal(t, SourceAI, resp.Source)
	require.NotNil(t, resp.TokenUsage)
	require.Equal(t, 98, resp.TokenUsage.TotalTokens)
	require.Equal(t, 1, gen.calls)
	require.Contains(t, gen.lastPrompt, "You are the official AI assistant for Global Academy of Technology")
	require.Contains(t, gen.lastPrompt, RefusalMessage(DefaultInstitution, testContact))
	require.Contains(t, gen.lastPrompt, "Question: Tell me about placements and average package")
}

func TestResolveShorthandBelowThresholdGoesToProvider(t *testing.T) {
	gen := &stubGenerator{
		generateFn: func(ctx context.Context, prompt string) (Completion, error) {
			return Completion{Text: "Around ₹80,000 per year."}, nil
		},
	}
	svc := newTestService(t, &stubKB{records: testRecords, contact: testContact}, gen, newStubStore())

	require.Equal(t, "Around ₹80,000 per year.", svc.Resolve(context.Background(), "hw much hostel fee"))
	require.Equal(t, 1, gen.calls)
}

func TestResolveProviderFailureReturnsApology(t *testing.T) {
	cases := map[string]func(ctx context.Context, prompt string) (Completion, error){
		"error": func(ctx context.Context, prompt string) (Completion, error) {
			return Completion{}, errors.New("status 503")
		},
		"empty text": func(ctx context.Context, prompt string) (Completion, error) {
			return Completion{Text: "   "}, nil
		},
		"panic": func(ctx context.Context, prompt string) (Completion, error) {
			panic("boom")
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			store := newStubStore()
			svc := newTestService(t, &stubKB{records: testRecords, contact: testContact}, &stubGenerator{generateFn: fn}, store)

			resp := svc.Answer(context.Background(), Request{Message: "hostel curfew timings"})
			require.Equal(t, AIUnavailableMessage, resp.Reply)
			require.Equal(t, SourceAIUnavailable, resp.Source)
			require.Empty(t, store.answers)
		})
	}
}

func TestResolveProviderTimeoutReturnsApology(t *testing.T) {
	gen := &stubGenerator{
		generateFn: func(ctx context.Context, prompt string) (Completion, error) {
			<-ctx.Done()
			return Completion{}, ctx.Err()
		},
	}
	svc := NewService(Config{ProviderTimeout: 10 * time.Millisecond, CacheTTL: time.Hour}, &stubKB{records: testRecords, contact: testContact}, gen, newStubStore(), discardLogger())

	require.Equal(t, AIUnavailableMessage, svc.Resolve(context.Background(), "exam schedule"))
}

func TestResolveKnowledgeBaseFailureReturnsErrorMessage(t *testing.T) {
	kb := &stubKB{listErr: errors.New("connection refused"), contact: testContact}
	gen := &stubGenerator{}
	svc := newTestService(t, kb, gen, newStubStore())

	got := svc.Resolve(context.Background(), "What is the hostel fee?")
	require.Equal(t, ErrorMessage(testContact), got)
	require.NotContains(t, got, "connection refused")
	require.Zero(t, gen.calls)
}

func TestResolveContactFailureUsesFallbackContact(t *testing.T) {
	fallback := AdminContact{Name: "Front Office", Email: "office@example.edu"}
	kb := &stubKB{records: testRecords, contactErr: errors.New("no rows")}
	svc := NewService(Config{FallbackContact: fallback}, kb, &stubGenerator{}, newStubStore(), discardLogger())

	require.Equal(t, ErrorMessage(fallback), svc.Resolve(context.Background(), "What's the weather today?"))
	// a matched question never needs the contact
	require.Equal(t, testRecords[1].Answer, svc.Resolve(context.Background(), "What is the hostel fee?"))
}

func TestResolveRecoversPanicInKnowledgeBase(t *testing.T) {
	kb := &stubKB{panicOnList: true, contact: testContact}
	svc := newTestService(t, kb, &stubGenerator{}, newStubStore())

	resp := svc.Answer(context.Background(), Request{Message: "anything"})
	require.Equal(t, SourceError, resp.Source)
	require.Equal(t, ErrorMessage(testContact), resp.Reply)
}

func TestResolveCancelledContextIsUnexpectedFailure(t *testing.T) {
	fallback := AdminContact{Name: "Front Office", Email: "office@example.edu"}
	svc := NewService(Config{FallbackContact: fallback}, &stubKB{records: testRecords, contact: testContact}, &stubGenerator{}, newStubStore(), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Equal(t, ErrorMessage(fallback), svc.Resolve(ctx, "What is the hostel fee?"))
}

func TestResolveIsIdempotentForMatches(t *testing.T) {
	svc := newTestService(t, &stubKB{records: testRecords, contact: testContact}, &stubGenerator{}, newStubStore())
	first := svc.Resolve(context.Background(), "are scholarships available")
	for i := 0; i < 3; i++ {
		require.Equal(t, first, svc.Resolve(context.Background(), "are scholarships available"))
	}
}

func TestResolveCachesProviderAnswers(t *testing.T) {
	gen := &stubGenerator{
		generateFn: func(ctx context.Context, prompt string) (Completion, error) {
			return Completion{Text: "Buses cover major routes."}, nil
		},
	}
	svc := newTestService(t, &stubKB{records: testRecords, contact: testContact}, gen, newStubStore())

	first := svc.Answer(context.Background(), Request{Message: "Is transport available?"})
	second := svc.Answer(context.Background(), Request{Message: "is transport available"})
	require.Equal(t, SourceAI, first.Source)
	require.Equal(t, SourceCache, second.Source)
	require.Equal(t, first.Reply, second.Reply)
	require.Equal(t, 1, gen.calls)
}

func TestResolveWithoutCacheTTLAlwaysCallsProvider(t *testing.T) {
	gen := &stubGenerator{
		generateFn: func(ctx context.Context, prompt string) (Completion, error) {
			return Completion{Text: "ok"}, nil
		},
	}
	svc := NewService(Config{}, &stubKB{records: testRecords, contact: testContact}, gen, newStubStore(), discardLogger())
	svc.Resolve(context.Background(), "library hours")
	svc.Resolve(context.Background(), "library hours")
	require.Equal(t, 2, gen.calls)
}

func TestTrendingCountsResolvedQueries(t *testing.T) {
	store := newStubStore()
	svc := NewService(Config{TopRecommendations: 2}, &stubKB{records: testRecords, contact: testContact}, &stubGenerator{}, store, discardLogger())

	svc.Resolve(context.Background(), "What is the hostel fee?")
	svc.Resolve(context.Background(), "what is the hostel fee")
	svc.Resolve(context.Background(), "What's the weather today?")
	svc.Resolve(context.Background(), "")

	recs, err := svc.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, TrendingQuery{Query: "What is the hostel fee?", Count: 2}, recs[0])
}

func TestTrendingWrapsStoreError(t *testing.T) {
	store := newStubStore()
	store.topErr = errors.New("valkey down")
	svc := newTestService(t, &stubKB{}, &stubGenerator{}, store)

	_, err := svc.Trending(context.Background())
	require.Error(t, err)
}

func newTestService(t *testing.T, kb KnowledgeBase, gen Generator, store Store) Service {
	t.Helper()
	cfg := Config{CacheTTL: time.Hour, TopRecommendations: 5}
	return NewService(cfg, kb, gen, store, discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubKB struct {
	records     []Record
	contact     AdminContact
	listErr     error
	contactErr  error
	panicOnList bool
}

func (s *stubKB) ListFAQs(ctx context.Context) ([]Record, error) {
	if s.panicOnList {
		panic("nil collection")
	}
	return s.records, s.listErr
}

func (s *stubKB) AdminContact(ctx context.Context) (AdminContact, error) {
	if s.contactErr != nil {
		return AdminContact{}, s.contactErr
	}
	return s.contact, nil
}

type stubGenerator struct {
	generateFn func(ctx context.Context, prompt string) (Completion, error)
	calls      int
	lastPrompt string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (Completion, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.generateFn != nil {
		return s.generateFn(ctx, prompt)
	}
	return Completion{}, errors.New("generator not configured")
}

type stubStore struct {
	mu       sync.Mutex
	answers  map[string]AnswerRecord
	counts   map[string]int64
	displays map[string]string
	topErr   error
}

func newStubStore() *stubStore {
	return &stubStore{
		answers:  make(map[string]AnswerRecord),
		counts:   make(map[string]int64),
		displays: make(map[string]string),
	}
}

func (s *stubStore) GetAnswer(ctx context.Context, key string) (AnswerRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.answers[key]
	return rec, ok, nil
}

func (s *stubStore) SaveAnswer(ctx context.Context, record AnswerRecord, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[record.Key] = record
	return nil
}

func (s *stubStore) IncrementQuery(ctx context.Context, canonical, display string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[canonical]++
	if _, ok := s.displays[canonical]; !ok {
		s.displays[canonical] = display
	}
	return nil
}

func (s *stubStore) TopQueries(ctx context.Context, limit int) ([]TrendingQuery, error) {
	if s.topErr != nil {
		return nil, s.topErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TrendingQuery, 0, len(s.counts))
	for k, c := range s.counts {
		out = append(out, TrendingQuery{Query: s.displays[k], Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Query < out[j].Query
		}
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
