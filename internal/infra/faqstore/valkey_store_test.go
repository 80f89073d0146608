package faqstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValkeyStoreKeys(t *testing.T) {
	store := NewValkeyStore(nil, "")

	key := store.answerKey("what is the hostel fee")
	require.True(t, strings.HasPrefix(key, "faqbot:answer:"))
	require.Equal(t, key, store.answerKey("what is the hostel fee"))
	require.NotEqual(t, key, store.answerKey("what is the library fee"))
	require.Equal(t, "faqbot:trending", store.trendingKey())
	require.Equal(t, "faqbot:display:library", store.displayKey("library"))
}
