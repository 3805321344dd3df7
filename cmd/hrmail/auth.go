package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hrmail/hrmail/internal/credential"
	"github.com/hrmail/hrmail/internal/fsutil"
)

var forceLogin bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Gmail authorization",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize access to Gmail, refreshing or re-consenting as needed",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the stored credential",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the stored credential",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogout,
}

func init() {
	authLoginCmd.Flags().BoolVar(&forceLogin, "force", false, "discard the stored credential and authorize again")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.ErrOrStderr(), nil)
	if err != nil {
		return err
	}
	if forceLogin {
		if err := a.credentials.Logout(); err != nil {
			return err
		}
	}

	cred, err := a.credentials.EnsureValid(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Authorized. Access token valid until %s.\n", formatExpiry(cred.Expiry))
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.ErrOrStderr(), nil)
	if err != nil {
		return err
	}
	state, cred, err := a.credentials.Status()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "State:  %s (%s)\n", state, stateHint(state))
	fmt.Fprintf(out, "File:   %s\n", a.cfg.Files.Credential)

	client := a.cfg.Files.ClientConfig
	if ok, err := fsutil.Exists(client); err != nil {
		return err
	} else if !ok {
		client += " (missing, authorization will fail)"
	}
	fmt.Fprintf(out, "Client: %s\n", client)
	if cred != nil {
		fmt.Fprintf(out, "Expiry: %s\n", formatExpiry(cred.Expiry))
		fmt.Fprintf(out, "Scopes: %s\n", strings.Join(cred.Scopes, " "))
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.ErrOrStderr(), nil)
	if err != nil {
		return err
	}
	if err := a.credentials.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Stored credential removed.")
	return nil
}

func formatExpiry(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format(time.RFC1123)
}

// stateHint explains what the next send will do for a credential in state s.
func stateHint(s credential.State) string {
	switch s {
	case credential.StateValid:
		return "ready to send"
	case credential.StateExpired:
		return "will be refreshed on the next send"
	default:
		return "run `hrmail auth login` to authorize"
	}
}
