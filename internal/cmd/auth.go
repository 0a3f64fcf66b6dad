package cmd

import (
	"github.com/RicardoYam/Meet/pkg/service"
	"github.com/spf13/cobra"
)

var (
	loginAccount string
	resetEmail   string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage your Meet account and session",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to Meet",
	Long:  "Authenticate with a username or email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(apiClient(), nil)
		return authSvc.LoginInteractive(cmd.Context(), loginAccount)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new Meet account",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(apiClient(), nil)
		return authSvc.SignupInteractive(cmd.Context())
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from Meet",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(apiClient(), nil)
		return authSvc.Logout()
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Display the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(apiClient(), nil)
		return authSvc.WhoAmI()
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset a forgotten password",
	Long:  "Send a reset code to your email, then choose a new password",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(apiClient(), nil)
		return authSvc.ResetPassword(cmd.Context(), resetEmail)
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginAccount, "user", "u", "", "Username or email")
	resetPasswordCmd.Flags().StringVar(&resetEmail, "email", "", "Account email")

	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(signupCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)
	authCmd.AddCommand(resetPasswordCmd)
}
