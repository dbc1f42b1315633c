package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/copydataai/blog/posts"
	"github.com/copydataai/blog/scaffold"
)

func newNewCmd(opts *rootOptions) *cobra.Command {
	var (
		tags        []string
		description string
	)
	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a draft post in the content directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			title := args[0]
			slug := posts.Slugify(title)
			if slug == "" {
				return fmt.Errorf("cannot derive a slug from %q", title)
			}
			if description == "" {
				description = title
			}
			path, err := writePost(cfg.ContentDir, slug, scaffold.PostData{
				Title:       title,
				Author:      cfg.Site.Author,
				Description: description,
				Tags:        tags,
				PubDatetime: time.Now().In(cfg.Location()).Truncate(time.Second),
			})
			if err != nil {
				return err
			}
			log.Info().Str("path", path).Msg("Created draft post")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "comma-separated tags")
	cmd.Flags().StringVarP(&description, "description", "d", "", "post description (defaults to the title)")
	return cmd
}

// writePost renders the scaffold into dir/<slug>.md, refusing to overwrite.
func writePost(dir, slug string, data scaffold.PostData) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, slug+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("post %s already exists", path)
		}
		return "", err
	}
	if err := scaffold.RenderPost(f, data); err != nil {
		f.Close()
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	return path, f.Close()
}
