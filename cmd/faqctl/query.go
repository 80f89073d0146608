package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/campus-faqbot/internal/bootstrap"
	"github.com/yanqian/campus-faqbot/internal/domain/faq"
)

func (c *cli) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the stored FAQs and admin contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, cleanup, err := bootstrap.ProvideKnowledgeBase(c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			records, err := kb.ListFAQs(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, rec := range records {
				fmt.Fprintf(out, "%d. %s\n   %s\n", i+1, rec.Question, rec.Answer)
			}
			contact, err := kb.AdminContact(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "admin: %s <%s>\n", contact.Name, contact.Email)
			return nil
		},
	}
}

func (c *cli) newAskCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Resolve a question the same way the chat endpoint does",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, cleanup, err := bootstrap.ProvideKnowledgeBase(c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer cleanup()
			generator, err := bootstrap.ProvideGenerator(c.cfg, c.logger)
			if err != nil {
				return err
			}

			svc := faq.NewService(bootstrap.ProvideFAQConfig(c.cfg), kb, generator, nil, c.logger)
			resp := svc.Answer(cmd.Context(), faq.Request{Message: strings.Join(args, " ")})
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Reply)
			if verbose {
				fmt.Fprintf(out, "source=%s score=%.3f matched=%q duration_ms=%d\n", resp.Source, resp.Score, resp.MatchedQuestion, resp.DurationMs)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print how the reply was produced")
	return cmd
}
