package faq

import (
	"context"
	"errors"
)

// ErrContactNotFound is returned when no admin contact has been stored.
var ErrContactNotFound = errors.New("admin contact not found")

// KnowledgeBase is the read side of the FAQ store used while resolving a query.
type KnowledgeBase interface {
	// ListFAQs returns every record in a stable order.
	ListFAQs(ctx context.Context) ([]Record, error)
	AdminContact(ctx context.Context) (AdminContact, error)
}

// Maintainer refreshes the store in bulk. Each call replaces the previous content.
type Maintainer interface {
	ReplaceFAQs(ctx context.Context, records []Record) error
	ReplaceAdminContact(ctx context.Context, contact AdminContact) error
}
