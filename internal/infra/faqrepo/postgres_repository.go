package faqrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/campus-faqbot/internal/domain/faq"
)

const schema = `
CREATE TABLE IF NOT EXISTS faqs (
	id       BIGSERIAL PRIMARY KEY,
	question TEXT NOT NULL,
	answer   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS admin_contacts (
	id    BIGSERIAL PRIMARY KEY,
	name  TEXT NOT NULL,
	email TEXT NOT NULL
);
`

// PostgresRepository implements the knowledge base using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the faqs and admin_contacts tables when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// ListFAQs returns all records ordered by insertion.
func (r *PostgresRepository) ListFAQs(ctx context.Context) ([]faq.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT question, answer
		FROM faqs
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []faq.Record
	for rows.Next() {
		var rec faq.Record
		if err := rows.Scan(&rec.Question, &rec.Answer); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// AdminContact returns the first stored contact.
func (r *PostgresRepository) AdminContact(ctx context.Context) (faq.AdminContact, error) {
	var contact faq.AdminContact
	err := r.pool.QueryRow(ctx, `
		SELECT name, email
		FROM admin_contacts
		ORDER BY id
		LIMIT 1
	`).Scan(&contact.Name, &contact.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return faq.AdminContact{}, faq.ErrContactNotFound
	}
	if err != nil {
		return faq.AdminContact{}, err
	}
	return contact, nil
}

// ReplaceFAQs clears the table and bulk inserts records in one transaction.
func (r *PostgresRepository) ReplaceFAQs(ctx context.Context, records []faq.Record) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM faqs`); err != nil {
			return fmt.Errorf("clear faqs: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"faqs"},
			[]string{"question", "answer"},
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				return []any{records[i].Question, records[i].Answer}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("insert faqs: %w", err)
		}
		return nil
	})
}

// ReplaceAdminContact swaps the stored contact in one transaction.
func (r *PostgresRepository) ReplaceAdminContact(ctx context.Context, contact faq.AdminContact) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM admin_contacts`); err != nil {
			return fmt.Errorf("clear contacts: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO admin_contacts (name, email)
			VALUES ($1, $2)
		`, contact.Name, contact.Email); err != nil {
			return fmt.Errorf("insert contact: %w", err)
		}
		return nil
	})
}

var (
	_ faq.KnowledgeBase = (*PostgresRepository)(nil)
	_ faq.Maintainer    = (*PostgresRepository)(nil)
)
