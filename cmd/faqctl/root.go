package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanqian/campus-faqbot/internal/infra/config"
	"github.com/yanqian/campus-faqbot/pkg/logger"
)

// cli carries state shared by every subcommand.
type cli struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "faqctl",
		Short:         "Maintain and query the campus FAQ knowledge base",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.cfgFile != "" {
				if err := os.Setenv("CONFIG_PATH", c.cfgFile); err != nil {
					return err
				}
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.logger = logger.New()
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&c.cfgFile, "config", "c", "", "config file path")

	root.AddCommand(c.newSeedCmd(), c.newListCmd(), c.newAskCmd())
	return root
}
