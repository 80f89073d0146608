package faqrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/campus-faqbot/internal/domain/faq"
)

func TestMemoryRepositoryReplaceAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	records, err := repo.ListFAQs(ctx)
	require.NoError(t, err)
	require.Empty(t, records)

	require.NoError(t, repo.ReplaceFAQs(ctx, []faq.Record{{Question: "a", Answer: "1"}, {Question: "b", Answer: "2"}}))
	require.NoError(t, repo.ReplaceFAQs(ctx, []faq.Record{{Question: "c", Answer: "3"}}))

	records, err = repo.ListFAQs(ctx)
	require.NoError(t, err)
	require.Equal(t, []faq.Record{{Question: "c", Answer: "3"}}, records)

	records[0].Answer = "mutated"
	again, _ := repo.ListFAQs(ctx)
	require.Equal(t, "3", again[0].Answer)
}

func TestMemoryRepositoryAdminContact(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.AdminContact(ctx)
	require.ErrorIs(t, err, faq.ErrContactNotFound)

	contact := faq.AdminContact{Name: "Mr. Rajesh Kumar", Email: "rajesh.kumar@gat.ac.in"}
	require.NoError(t, repo.ReplaceAdminContact(ctx, contact))
	got, err := repo.AdminContact(ctx)
	require.NoError(t, err)
	require.Equal(t, contact, got)
}
