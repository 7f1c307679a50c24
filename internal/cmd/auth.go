package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/projects42/projects42-cli/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with your 42 account",
	Long: `Authenticate using the backend's 42 OAuth redirect flow.

This command will:
1. Ask the backend for the 42 authorization URL
2. Open your browser for authorization
3. Wait for the backend to redirect back to a local callback listener
4. Verify the session and save it locally

The backend must be configured to redirect back to this machine's callback
address (default http://127.0.0.1:4242/auth/callback, see callback_addr in
the config file).`,
	RunE: runLogin,
}

var loginTimeout time.Duration

func runLogin(cmd *cobra.Command, args []string) error {
	client, cfg, err := getClient(cmd)
	if err != nil {
		return err
	}

	machine := session.New(client)

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	authURL, err := machine.BeginLogin(ctx)
	cancel()
	if err != nil {
		return err
	}

	fmt.Printf("Authenticating with %s...\n\n", cfg.ServerURL)
	fmt.Println("Please complete the login in your browser:")
	fmt.Printf("\n  %s\n\n", authURL)

	if err := session.OpenBrowser(authURL); err != nil {
		fmt.Fprintf(os.Stderr, "Note: %v\n\n", err)
	}

	fmt.Println("Waiting for authorization...")

	waitCtx, cancelWait := context.WithTimeout(cmd.Context(), loginTimeout)
	defer cancelWait()

	result, err := session.WaitForCallback(waitCtx, cfg.CallbackAddr)
	if err != nil {
		return fmt.Errorf("did not receive the login callback: %w", err)
	}

	outcome := machine.ResolveCallback(result)
	if outcome.State == session.CallbackError {
		return fmt.Errorf("authentication failed: %s", outcome.Message)
	}

	// The callback only signals success; the session cookie is confirmed by
	// asking the backend who we are.
	checkCtx, cancelCheck := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancelCheck()

	if machine.Check(checkCtx) == session.Authenticated {
		if err := client.SaveSession(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save session: %v\n", err)
		}
		fmt.Printf("\n✓ Logged in as %s\n", machine.User().Login42)
		return nil
	}

	fmt.Println("\n✓ Authorization completed.")
	fmt.Println("The backend accepted the login but no session cookie reached this client.")
	fmt.Println("Check the backend's frontend redirect configuration.")
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the current session",
	Long: `Invalidate the server-side session and discard the local session cookie.

The local session is always dropped, even if the server cannot be reached.`,
	RunE: runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	client, _, err := getClient(cmd)
	if err != nil {
		return err
	}

	machine := session.New(client)

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	if err := machine.Logout(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: server logout failed: %v\n", err)
	}

	fmt.Println("Logged out.")
	return nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current authentication status",
	Long:  "Check whether the stored session is still valid and display the logged-in user.",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, cfg, err := getClient(cmd)
	if err != nil {
		return err
	}

	machine := session.New(client)

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	if machine.Check(ctx) != session.Authenticated {
		fmt.Println("Not logged in.")
		fmt.Println("\nRun 'projects42 login' to authenticate.")
		return nil
	}

	user := machine.User()
	fmt.Println("Authentication Status:")
	fmt.Println()
	fmt.Printf("  Server:      %s\n", cfg.ServerURL)
	fmt.Printf("  Login:       %s\n", user.Login42)
	if user.Email != "" {
		fmt.Printf("  Email:       %s\n", user.Email)
	}
	if user.Campus != "" {
		fmt.Printf("  Campus:      %s\n", user.Campus)
	}
	fmt.Println("  Status:      ✓ Logged in")

	return nil
}

func init() {
	loginCmd.Flags().DurationVar(&loginTimeout, "timeout", 5*time.Minute, "how long to wait for the browser flow")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
}
