package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/habit-cli/internal/adapters/tui"
)

var (
	loginName   string
	loginEmail  string
	logoutAll   bool
	logoutForce bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Set the name shown on the dashboard",
	Long: `Store a display name and email for the dashboard greeting.
This is local and cosmetic; there is no account or password.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, email := loginName, loginEmail
		if isTerminal(cmd.OutOrStdout()) {
			if name == "" {
				res := tui.RunTextPrompt("Name:", "Your name", &app.config.Theme)
				if res.Aborted {
					return nil
				}
				name = res.Value
			}
			if email == "" {
				res := tui.RunTextPrompt("Email:", "you@example.com", &app.config.Theme)
				if res.Aborted {
					return nil
				}
				email = res.Value
			}
		}

		profile, err := app.profiles.Login(cmd.Context(), name, email)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"name":  profile.Name,
				"email": profile.Email,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "👋 Hello, %s\n", profile.Greeting())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored name",
	Long:  `Clear the stored name and email. With --all the habit log is wiped as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if logoutAll && !confirmDestructive(cmd, "Also delete all habits and history?", logoutForce) {
			return errors.New("aborted")
		}
		if err := app.profiles.Logout(cmd.Context(), logoutAll); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{"logged_out": true, "wiped": logoutAll})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		if logoutAll {
			fmt.Fprintln(cmd.OutOrStdout(), "All habits and history were deleted.")
		}
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored name and email",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := app.profiles.Current(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			data := map[string]interface{}{"logged_in": profile != nil}
			if profile != nil {
				data["name"] = profile.Name
				data["email"] = profile.Email
			}
			return printJSON(cmd.OutOrStdout(), data)
		}

		if profile == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", profile.Name, profile.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginName, "name", "", "Display name")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address")
	logoutCmd.Flags().BoolVar(&logoutAll, "all", false, "Also delete all habits and history")
	logoutCmd.Flags().BoolVarP(&logoutForce, "force", "f", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
