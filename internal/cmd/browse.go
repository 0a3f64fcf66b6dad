package cmd

import (
	"github.com/RicardoYam/Meet/internal/tui"
	"github.com/RicardoYam/Meet/pkg/config"
	"github.com/RicardoYam/Meet/pkg/service"
	"github.com/spf13/cobra"
)

var (
	browseCategory string
	browseTag      string
	browseSort     string
	browsePageSize int
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse posts and threads interactively",
	Long: `Open the interactive browser. Scroll the feed, load more posts,
change the sort order, filter by category or tag, and open a post to
read and reply to its comments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sort := browseSort
		if sort == "" {
			sort = config.GetString(config.KeySort)
		}
		if _, err := service.ParseSort(sort); err != nil {
			return err
		}

		c := apiClient()
		return tui.Run(cmd.Context(), tui.Deps{
			Feed:    service.NewFeedService(c, pageSize(browsePageSize)),
			Threads: service.NewThreadService(c),
			Votes:   service.NewVoteService(c),
			Session: loadSession(),
			Query: service.ListOptions{
				Category: browseCategory,
				Tag:      browseTag,
				Sort:     sort,
			},
		})
	},
}

func init() {
	browseCmd.Flags().StringVar(&browseCategory, "category", "", "Start filtered to a category")
	browseCmd.Flags().StringVar(&browseTag, "tag", "", "Start filtered to a tag")
	browseCmd.Flags().StringVar(&browseSort, "sort", "", "Initial sort: newest, oldest, most-liked")
	browseCmd.Flags().IntVar(&browsePageSize, "page-size", 0, "Posts per page (default from config)")
}
