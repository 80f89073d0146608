package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/campus-faqbot/internal/bootstrap"
	"github.com/yanqian/campus-faqbot/internal/domain/faq"
	"github.com/yanqian/campus-faqbot/internal/infra/dataset"
)

func (c *cli) newSeedCmd() *cobra.Command {
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Replace stored FAQs or the admin contact",
	}
	seed.AddCommand(c.newSeedFAQsCmd(), c.newSeedContactCmd())
	return seed
}

func (c *cli) newSeedFAQsCmd() *cobra.Command {
	var (
		file      string
		objectKey string
	)
	cmd := &cobra.Command{
		Use:   "faqs",
		Short: "Clear the FAQ table and insert the curated dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" && objectKey != "" {
				return errors.New("--file and --object are mutually exclusive")
			}
			ctx := cmd.Context()
			ds, err := bootstrap.LoadDataset(ctx, c.cfg, c.logger, file, objectKey)
			if err != nil {
				return err
			}
			repo, cleanup, err := bootstrap.ConnectPostgres(ctx, c.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := dataset.Seed(ctx, repo, ds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d faqs, contact %s <%s>\n", len(ds.FAQs), ds.Contact.Name, ds.Contact.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML dataset file")
	cmd.Flags().StringVar(&objectKey, "object", "", "dataset object key in the configured bucket")
	return cmd
}

func (c *cli) newSeedContactCmd() *cobra.Command {
	var contact faq.AdminContact
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Replace the admin contact named in refusals",
		RunE: func(cmd *cobra.Command, args []string) error {
			contact.Name = strings.TrimSpace(contact.Name)
			contact.Email = strings.TrimSpace(contact.Email)
			if contact.IsZero() {
				return errors.New("--name and --email are required")
			}
			ctx := cmd.Context()
			repo, cleanup, err := bootstrap.ConnectPostgres(ctx, c.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := repo.ReplaceAdminContact(ctx, contact); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin contact set to %s <%s>\n", contact.Name, contact.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&contact.Name, "name", "", "contact name")
	cmd.Flags().StringVar(&contact.Email, "email", "", "contact email")
	return cmd
}
