package cmd

import (
	"github.com/RicardoYam/Meet/pkg/prompter"
	"github.com/RicardoYam/Meet/pkg/service"
	"github.com/RicardoYam/Meet/pkg/session"
	"github.com/spf13/cobra"
)

var (
	commentReplyTo int64
	commentContent string
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Comment on posts",
}

var commentAddCmd = &cobra.Command{
	Use:   "add <post-id>",
	Short: "Comment on a post or reply to a comment",
	Long: `Add a top-level comment to a post, or reply to one of its comments
with --reply-to. The updated thread is printed afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0], "post-id")
		if err != nil {
			return err
		}
		var parent *int64
		if commentReplyTo > 0 {
			parent = &commentReplyTo
		}

		content := commentContent
		if content == "" {
			if content, err = prompter.Default().Multiline("Comment", 0); err != nil {
				return err
			}
		}

		threadSvc := service.NewThreadService(apiClient())
		return withSession(cmd, func(sess *session.Session) error {
			return threadSvc.AddComment(cmd.Context(), sess, postID, parent, content)
		})
	},
}

func init() {
	commentAddCmd.Flags().Int64Var(&commentReplyTo, "reply-to", 0, "Comment id to reply to")
	commentAddCmd.Flags().StringVarP(&commentContent, "content", "c", "", "Comment text (prompted when empty)")

	commentCmd.AddCommand(commentAddCmd)
}
