package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/copydataai/blog"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd(ver string) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "blog",
		Short:         "A personal blog engine built with Go, Echo, and templ",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd, opts.logLevel)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", os.Getenv("BLOG_CONFIG"), "path to the YAML site configuration")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(opts),
		newNewCmd(opts),
		newListCmd(opts),
		newVersionCmd(ver),
	)
	return cmd
}

func setupLogging(cmd *cobra.Command, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        cmd.ErrOrStderr(),
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

func (o *rootOptions) loadConfig() (blog.SiteConfig, error) {
	cfg, err := blog.LoadConfig(o.configPath)
	if err != nil {
		return blog.SiteConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Sync content and serve the blog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return blog.New(cfg).Start(ctx)
		},
	}
}

func newVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the blog version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blog %s\n", ver)
		},
	}
}
