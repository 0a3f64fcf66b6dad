package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/RicardoYam/Meet/pkg/api"
	"github.com/RicardoYam/Meet/pkg/auth"
	"github.com/RicardoYam/Meet/pkg/client"
	"github.com/RicardoYam/Meet/pkg/config"
	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/logger"
	"github.com/RicardoYam/Meet/pkg/output"
	"github.com/RicardoYam/Meet/pkg/prompter"
	"github.com/RicardoYam/Meet/pkg/service"
	"github.com/RicardoYam/Meet/pkg/session"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "meet-cli",
	Short: "Meet CLI - read and write the Meet blog from the terminal",
	Long: `Meet CLI is a command-line interface for the Meet blogging
platform. Browse posts, follow comment threads, reply, vote and
manage your profile directly from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		logger.Init(verbose)

		if outputFmt != "" {
			if !output.ValidateOutputFormat(outputFmt) {
				return clierrors.ValidationError("output", "must be one of text, json, table")
			}
			config.Set(config.KeyOutputFormat, outputFmt)
		}

		client.Init()
		return nil
	},
}

// Execute runs the root command until it finishes or the process is interrupted
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, clierrors.FormatError(err))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/meet/cli/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "Output format: text, json, table")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(versionCmd)
}

// apiClient wraps the shared HTTP client configured in PersistentPreRunE
func apiClient() *api.Client {
	return api.Default()
}

// loadSession returns the stored session, or nil when nobody is logged in.
// Commands that write pass it on; the services decide whether it is required.
func loadSession() *session.Session {
	sess, err := session.Load()
	if err != nil {
		logger.Debug("No usable stored session", "error", err)
		return nil
	}
	return sess
}

// withSession runs fn with the stored session. On a terminal, a missing or rejected
// session leads to a login prompt and one more attempt.
func withSession(cmd *cobra.Command, fn func(*session.Session) error) error {
	sess := loadSession()
	if !prompter.Interactive() {
		return fn(sess)
	}
	authSvc := service.NewAuthService(apiClient(), nil)
	return auth.NewSessionRecovery(authSvc.Login, prompter.Default()).Do(cmd.Context(), sess, fn)
}
