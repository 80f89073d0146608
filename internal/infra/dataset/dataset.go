package dataset

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/campus-faqbot/internal/domain/faq"
	apperrors "github.com/yanqian/campus-faqbot/pkg/errors"
)

//go:embed default.yaml
var defaultDataset []byte

// Dataset is the curated content loaded into the knowledge base.
type Dataset struct {
	Contact faq.AdminContact `yaml:"contact"`
	FAQs    []faq.Record     `yaml:"faqs"`
}

// Default returns the dataset bundled with the binary.
func Default() (Dataset, error) {
	return Parse(defaultDataset)
}

// LoadFile reads a YAML dataset from disk.
func LoadFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML dataset.
func Parse(data []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, apperrors.Wrap(apperrors.CodeDataset, "parse dataset", err)
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, apperrors.Wrap(apperrors.CodeDataset, "invalid dataset", err)
	}
	return ds, nil
}

// Validate rejects blank records and an incomplete contact.
func (d Dataset) Validate() error {
	if d.Contact.IsZero() {
		return fmt.Errorf("dataset contact requires name and email")
	}
	for i, rec := range d.FAQs {
		if strings.TrimSpace(rec.Question) == "" || strings.TrimSpace(rec.Answer) == "" {
			return fmt.Errorf("dataset faq %d has an empty question or answer", i)
		}
	}
	return nil
}

// Seed replaces the store content with the dataset (clear then insert).
func Seed(ctx context.Context, m faq.Maintainer, ds Dataset) error {
	if err := m.ReplaceFAQs(ctx, ds.FAQs); err != nil {
		return fmt.Errorf("seed faqs: %w", err)
	}
	if err := m.ReplaceAdminContact(ctx, ds.Contact); err != nil {
		return fmt.Errorf("seed contact: %w", err)
	}
	return nil
}
