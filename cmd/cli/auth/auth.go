package auth

import (
	"fmt"

	"github.com/crucial707/blog-api/cmd/cli/client"
	"github.com/crucial707/blog-api/cmd/cli/config"
	"github.com/crucial707/blog-api/cmd/cli/output"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/spf13/cobra"
)

// InitAuth registers register, login, logout and profile on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd(), profileCmd())
}

type sessionResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

func registerCmd() *cobra.Command {
	var email, password, username string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp sessionResponse
			payload := map[string]string{"email": email, "password": password, "username": username}
			if err := client.Call("POST", "/auth/register", false, payload, &resp); err != nil {
				return fmt.Errorf("register: %w", err)
			}
			return saveSession(cmd, resp)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&username, "username", "", "display name")
	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp sessionResponse
			payload := map[string]string{"email": email, "password": password}
			if err := client.Call("POST", "/auth/login", false, payload, &resp); err != nil {
				return fmt.Errorf("login: %w", err)
			}
			return saveSession(cmd, resp)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the logged-in user and their posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var prof models.Profile
			if err := client.Call("GET", "/auth/profile", true, nil, &prof); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s> (%s)\n", prof.Username, prof.Email, prof.ID)
			rows := make([][]interface{}, 0, len(prof.MyPosts))
			for _, p := range prof.MyPosts {
				rows = append(rows, []interface{}{p.ID, p.Title, len(p.Likes), len(p.Comments), output.Millis(p.CreatedAt)})
			}
			output.RenderTable(out, []string{"ID", "Title", "Likes", "Comments", "Created"}, rows)
			return nil
		},
	}
}

func saveSession(cmd *cobra.Command, resp sessionResponse) error {
	if resp.Token == "" {
		return fmt.Errorf("no token returned")
	}
	if err := config.SaveToken(resp.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Token stored locally.\n", resp.User.Username)
	return nil
}
