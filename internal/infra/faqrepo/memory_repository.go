package faqrepo

import (
	"context"
	"sync"

	"github.com/yanqian/campus-faqbot/internal/domain/faq"
)

// MemoryRepository is an in-memory knowledge base used for tests/dev.
type MemoryRepository struct {
	mu         sync.RWMutex
	records    []faq.Record
	contact    faq.AdminContact
	hasContact bool
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// ListFAQs implements faq.KnowledgeBase. Records come back in insertion order.
func (r *MemoryRepository) ListFAQs(_ context.Context) ([]faq.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]faq.Record(nil), r.records...), nil
}

// AdminContact implements faq.KnowledgeBase.
func (r *MemoryRepository) AdminContact(_ context.Context) (faq.AdminContact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.hasContact {
		return faq.AdminContact{}, faq.ErrContactNotFound
	}
	return r.contact, nil
}

// ReplaceFAQs implements faq.Maintainer.
func (r *MemoryRepository) ReplaceFAQs(_ context.Context, records []faq.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append([]faq.Record(nil), records...)
	return nil
}

// ReplaceAdminContact implements faq.Maintainer.
func (r *MemoryRepository) ReplaceAdminContact(_ context.Context, contact faq.AdminContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contact = contact
	r.hasContact = true
	return nil
}

var (
	_ faq.KnowledgeBase = (*MemoryRepository)(nil)
	_ faq.Maintainer    = (*MemoryRepository)(nil)
)
