package cmd

import (
	"strconv"

	"github.com/RicardoYam/Meet/pkg/api"
	"github.com/RicardoYam/Meet/pkg/config"
	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/service"
	"github.com/RicardoYam/Meet/pkg/session"
	"github.com/spf13/cobra"
)

var (
	listCategory string
	listTag      string
	listSearch   string
	listSort     string
	listPageSize int
	listPages    int
	listAll      bool

	postTitle      string
	postContent    string
	postCategories []string
	postTags       []string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post commands",
	Long:  "List, read, publish and vote on posts",
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	Long: `List posts, newest first by default.

Filter by category or tag, or search titles and content. Search
cannot be combined with filters and ignores --sort.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := service.ListOptions{
			Category: listCategory,
			Tag:      listTag,
			Search:   listSearch,
			Sort:     listSort,
			Pages:    listPages,
			All:      listAll,
		}
		if opts.Sort == "" {
			opts.Sort = config.GetString(config.KeySort)
		}
		feedSvc := service.NewFeedService(apiClient(), pageSize(listPageSize))
		return feedSvc.ViewPosts(cmd.Context(), opts)
	},
}

var postViewCmd = &cobra.Command{
	Use:   "view <post-id>",
	Short: "Show a post with its comment thread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "post-id")
		if err != nil {
			return err
		}
		threadSvc := service.NewThreadService(apiClient())
		return threadSvc.ViewPost(cmd.Context(), id)
	},
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new post",
	Long:  "Publish a post. Anything not given as a flag is prompted for.",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := api.PostRequest{
			Title:      postTitle,
			Content:    postContent,
			Categories: postCategories,
			Tags:       postTags,
		}
		// With title and content on the command line, missing labels mean none
		if req.Title != "" && req.Content != "" {
			if req.Categories == nil {
				req.Categories = []string{}
			}
			if req.Tags == nil {
				req.Tags = []string{}
			}
		}
		postSvc := service.NewPostService(apiClient(), nil)
		return withSession(cmd, func(sess *session.Session) error {
			return postSvc.CreateInteractive(cmd.Context(), sess, req)
		})
	},
}

var postVoteCmd = &cobra.Command{
	Use:   "vote <post-id>",
	Short: "Toggle your upvote on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "post-id")
		if err != nil {
			return err
		}
		voteSvc := service.NewVoteService(apiClient())
		return withSession(cmd, func(sess *session.Session) error {
			return voteSvc.Vote(cmd.Context(), sess, id)
		})
	},
}

func init() {
	postListCmd.Flags().StringVar(&listCategory, "category", "", "Only posts in this category")
	postListCmd.Flags().StringVar(&listTag, "tag", "", "Only posts with this tag")
	postListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Search titles and content")
	postListCmd.Flags().StringVar(&listSort, "sort", "", "Sort order: newest, oldest, most-liked")
	postListCmd.Flags().IntVar(&listPageSize, "page-size", 0, "Posts per page (default from config)")
	postListCmd.Flags().IntVar(&listPages, "pages", 1, "Number of pages to load")
	postListCmd.Flags().BoolVar(&listAll, "all", false, "Load every page")

	postCreateCmd.Flags().StringVarP(&postTitle, "title", "t", "", "Post title")
	postCreateCmd.Flags().StringVarP(&postContent, "content", "c", "", "Post content (HTML allowed)")
	postCreateCmd.Flags().StringSliceVar(&postCategories, "category", nil, "Category (repeatable)")
	postCreateCmd.Flags().StringSliceVar(&postTags, "tag", nil, "Tag (repeatable)")

	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postViewCmd)
	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postVoteCmd)
}

// pageSize falls back to the configured page size when the flag is unset
func pageSize(flag int) int {
	if flag > 0 {
		return flag
	}
	return config.GetInt(config.KeyPageSize)
}

func parseID(arg, name string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, clierrors.ValidationError(name, "must be a positive number")
	}
	return id, nil
}
