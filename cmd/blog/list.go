package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/copydataai/blog/content"
	"github.com/copydataai/blog/posts"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		page string
		tag  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the post listing straight from the content directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			loaded, err := content.Loader{
				Dir:           cfg.ContentDir,
				DefaultAuthor: cfg.Site.Author,
				Location:      cfg.Location(),
			}.Load(cmd.Context())
			if loaded == nil {
				return err
			}
			if err != nil {
				log.Warn().Err(err).Msg("Some posts could not be loaded")
			}

			sorted := posts.SortedPosts(loaded)
			if tag != "" {
				sorted = posts.PostsByTag(sorted, posts.Slugify(tag))
			}
			pg := posts.Paginate(cfg.PageConfig(), sorted, page, false)
			if !pg.Found() {
				return fmt.Errorf("page %q does not exist (%d pages)", page, pg.TotalPages)
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PUBLISHED\tSLUG\tTITLE\tTAGS")
			for _, p := range pg.Items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					p.PubDatetime.In(cfg.Location()).Format("2006-01-02 15:04"),
					p.Slug, p.Title, strings.Join(posts.SlugifyAll(p.Tags), ","))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "page %d of %d\n", pg.CurrentPage, pg.TotalPages)
			return nil
		},
	}
	cmd.Flags().StringVarP(&page, "page", "p", "1", "page number")
	cmd.Flags().StringVar(&tag, "tag", "", "only list posts with this tag")
	return cmd
}
