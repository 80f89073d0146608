package faqstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/campus-faqbot/internal/domain/faq"
)

func TestMemoryStoreAnswers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(2)

	_, ok, err := store.GetAnswer(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.SaveAnswer(ctx, faq.AnswerRecord{Key: "a", Answer: "1"}, time.Hour))
	got, ok, err := store.GetAnswer(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", got.Answer)
}

func TestMemoryStoreExpiresAnswers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	require.NoError(t, store.SaveAnswer(ctx, faq.AnswerRecord{Key: "a", Answer: "1"}, time.Nanosecond))
	time.Sleep(2 * time.Millisecond)
	_, ok, err := store.GetAnswer(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(2)

	require.NoError(t, store.SaveAnswer(ctx, faq.AnswerRecord{Key: "a"}, 0))
	require.NoError(t, store.SaveAnswer(ctx, faq.AnswerRecord{Key: "b"}, 0))
	_, _, _ = store.GetAnswer(ctx, "a")
	require.NoError(t, store.SaveAnswer(ctx, faq.AnswerRecord{Key: "c"}, 0))

	_, ok, _ := store.GetAnswer(ctx, "b")
	require.False(t, ok)
	_, ok, _ = store.GetAnswer(ctx, "a")
	require.True(t, ok)
}

func TestMemoryStoreTopQueries(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	require.NoError(t, store.IncrementQuery(ctx, "hostel fee", "Hostel fee?"))
	require.NoError(t, store.IncrementQuery(ctx, "hostel fee", "HOSTEL FEE"))
	require.NoError(t, store.IncrementQuery(ctx, "library", "Library"))
	require.NoError(t, store.IncrementQuery(ctx, "", "ignored"))

	top, err := store.TopQueries(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []faq.TrendingQuery{{Query: "Hostel fee?", Count: 2}}, top)

	all, err := store.TopQueries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
