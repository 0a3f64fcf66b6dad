package cmd

import (
	"github.com/RicardoYam/Meet/pkg/prompter"
	"github.com/RicardoYam/Meet/pkg/service"
	"github.com/RicardoYam/Meet/pkg/session"
	"github.com/spf13/cobra"
)

var profileBio string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile commands",
	Long:  "View profiles, edit your bio and follow other users",
}

var profileViewCmd = &cobra.Command{
	Use:   "view [username]",
	Short: "Show a profile and its posts",
	Long:  "Show a user's profile and posts. Without a username, shows your own.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var username string
		if len(args) == 1 {
			username = args[0]
		} else if sess := loadSession(); sess != nil {
			username = sess.Username
		}
		profileSvc := service.NewProfileService(apiClient())
		return profileSvc.ViewProfile(cmd.Context(), username)
	},
}

var profileBioCmd = &cobra.Command{
	Use:   "bio",
	Short: "Update your bio",
	RunE: func(cmd *cobra.Command, args []string) error {
		bio := profileBio
		if !cmd.Flags().Changed("set") {
			var err error
			if bio, err = prompter.Default().Multiline("Bio", 0); err != nil {
				return err
			}
		}
		profileSvc := service.NewProfileService(apiClient())
		return withSession(cmd, func(sess *session.Session) error {
			return profileSvc.UpdateBio(cmd.Context(), sess, bio)
		})
	},
}

var profileFollowCmd = &cobra.Command{
	Use:   "follow <user-id>",
	Short: "Follow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFollow(cmd, args[0], true)
	},
}

var profileUnfollowCmd = &cobra.Command{
	Use:   "unfollow <user-id>",
	Short: "Unfollow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFollow(cmd, args[0], false)
	},
}

func setFollow(cmd *cobra.Command, arg string, follow bool) error {
	id, err := parseID(arg, "user-id")
	if err != nil {
		return err
	}
	profileSvc := service.NewProfileService(apiClient())
	return withSession(cmd, func(sess *session.Session) error {
		return profileSvc.SetFollow(cmd.Context(), sess, id, follow)
	})
}

func init() {
	profileBioCmd.Flags().StringVar(&profileBio, "set", "", "New bio (prompted when omitted)")

	profileCmd.AddCommand(profileViewCmd)
	profileCmd.AddCommand(profileBioCmd)
	profileCmd.AddCommand(profileFollowCmd)
	profileCmd.AddCommand(profileUnfollowCmd)
}
