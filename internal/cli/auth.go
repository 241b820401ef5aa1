package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/wavebar/internal/browser"
	wberrors "github.com/tessro/wavebar/internal/errors"
	"github.com/tessro/wavebar/internal/spotify/auth"
	"github.com/tessro/wavebar/internal/spotify/client"
)

const loginTimeout = 5 * time.Minute

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Spotify authentication",
	Long:  `Commands for managing Spotify OAuth authentication.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with Spotify",
	Long:  `Opens a browser to authenticate with Spotify using the OAuth PKCE flow.`,
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored Spotify credentials",
	Long:  `Removes the stored Spotify OAuth tokens from the local machine.`,
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long:  `Shows the current Spotify authentication status.`,
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	if cfg.Spotify.ClientID == "" {
		return wberrors.ErrNotConfigured
	}
	out := cmd.OutOrStdout()

	pkce, err := auth.NewPKCE()
	if err != nil {
		return fmt.Errorf("failed to generate PKCE: %w", err)
	}

	oauth := auth.NewConfig(cfg.Spotify.ClientID)
	if cfg.Spotify.RedirectURI != "" {
		oauth.RedirectURI = cfg.Spotify.RedirectURI
	}
	port, path, err := oauth.CallbackAddress()
	if err != nil {
		return err
	}

	callbackServer, err := auth.NewCallbackServer(port, path)
	if err != nil {
		return fmt.Errorf("failed to start callback server: %w", err)
	}
	callbackServer.Start()
	defer func() { _ = callbackServer.Shutdown(context.Background()) }()

	authURL := oauth.BuildAuthURL(pkce)
	logger.Debug("opening authorization page", "redirect_uri", oauth.RedirectURI)
	_, _ = fmt.Fprintln(out, "Opening browser for Spotify authentication...")
	if err := browser.Open(authURL); err != nil {
		_, _ = fmt.Fprintf(out, "Could not open browser automatically.\n")
		_, _ = fmt.Fprintf(out, "Please open this URL in your browser:\n\n%s\n\n", authURL)
	}

	_, _ = fmt.Fprintln(out, "Waiting for authentication...")
	ctx, cancel := context.WithTimeout(cmd.Context(), loginTimeout)
	defer cancel()

	result, err := callbackServer.Wait(ctx)
	if err != nil {
		return fmt.Errorf("authentication timed out: %w", err)
	}
	if result.Error != "" {
		return fmt.Errorf("authentication failed: %s", result.Error)
	}
	if result.State != pkce.State {
		return errors.New("state mismatch: possible CSRF attack")
	}

	token, err := auth.ExchangeCode(ctx, cfg.Spotify.ClientID, result.Code, oauth.RedirectURI, pkce.Verifier)
	if err != nil {
		return fmt.Errorf("failed to exchange code: %w", err)
	}

	storage, err := newStorage()
	if err != nil {
		return err
	}
	c := client.New(cfg.Spotify.ClientID, storage)
	c.SetLogger(logger)
	if err := c.SetToken(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	user, err := c.GetCurrentUser(ctx)
	if err != nil {
		logger.Warn("could not fetch profile", "err", err)
		_, _ = fmt.Fprintln(out, "Authentication successful! Token stored.")
		return nil
	}

	if JSONOutput() {
		return printJSON(out, map[string]any{
			"status":       "authenticated",
			"user_id":      user.ID,
			"display_name": user.DisplayName,
			"product":      user.Product,
		})
	}
	_, _ = fmt.Fprintf(out, "Successfully authenticated as %s\n", user.DisplayName)
	if !user.IsPremium() {
		_, _ = fmt.Fprintln(out, "Note: seeking and playback control require Spotify Premium.")
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	storage, err := newStorage()
	if err != nil {
		return err
	}

	if !storage.Exists() {
		if JSONOutput() {
			return printJSON(out, map[string]string{"status": "not_authenticated"})
		}
		_, _ = fmt.Fprintln(out, "Not authenticated with Spotify.")
		return nil
	}

	if err := storage.Delete(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	if JSONOutput() {
		return printJSON(out, map[string]string{"status": "logged_out"})
	}
	_, _ = fmt.Fprintln(out, "Logged out of Spotify.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	storage, err := newStorage()
	if err != nil {
		return err
	}

	token, err := storage.Load()
	if err != nil {
		return fmt.Errorf("failed to load token: %w", err)
	}

	if token == nil {
		if JSONOutput() {
			return printJSON(out, map[string]any{"authenticated": false})
		}
		_, _ = fmt.Fprintln(out, "Not authenticated with Spotify.")
		_, _ = fmt.Fprintln(out, "Run 'wavebar auth login' to authenticate.")
		return nil
	}

	status := map[string]any{
		"authenticated": true,
		"expired":       token.IsExpired(),
		"expires_at":    token.ExpiresAt,
		"token_file":    storage.Path(),
	}

	if cfg.Spotify.ClientID != "" {
		c := client.New(cfg.Spotify.ClientID, storage)
		c.SetLogger(logger)
		if err := c.LoadToken(); err != nil {
			return fmt.Errorf("failed to load token: %w", err)
		}
		user, err := c.GetCurrentUser(cmd.Context())
		if err != nil {
			status["error"] = err.Error()
		} else {
			status["expired"] = false
			status["user_id"] = user.ID
			status["display_name"] = user.DisplayName
			status["product"] = user.Product
		}
	}

	if JSONOutput() {
		return printJSON(out, status)
	}

	if e, ok := status["error"]; ok {
		_, _ = fmt.Fprintf(out, "Token may be expired or invalid: %v\n", e)
		_, _ = fmt.Fprintln(out, "Run 'wavebar auth login' to re-authenticate.")
		return nil
	}
	t := NewTable(out)
	if name, ok := status["display_name"]; ok {
		t.Row("Authenticated as:", fmt.Sprint(name))
		t.Row("Account type:", fmt.Sprint(status["product"]))
	} else if token.IsExpired() {
		t.Row("Status:", "authenticated, token expired")
	} else {
		t.Row("Status:", "authenticated")
	}
	t.Row("Token expires:", relativeTime(token.ExpiresAt))
	t.Row("Token file:", storage.Path())
	t.Flush()
	return nil
}
