package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abelbrown/siadash/internal/format"
	"github.com/abelbrown/siadash/internal/state"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the access token",
	Long: `Exchange credentials for an access token and keep it in the local
state database. With --token an existing token is stored as is.

Examples:
  siadash login --email me@example.com       # Prompts for the password
  echo "$PW" | siadash login --email me@example.com --password-stdin
  siadash login --token eyJhbGciOi...`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rt.client.Logout(); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show, set or toggle the dashboard theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{state.ThemeLight, state.ThemeDark, "toggle"},
	RunE:      runTheme,
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().Bool("password-stdin", false, "read the password from stdin")
	loginCmd.Flags().String("token", "", "store this token instead of signing in")
}

func runLogin(cmd *cobra.Command, args []string) error {
	if tok, _ := cmd.Flags().GetString("token"); tok != "" {
		if err := state.SetToken(rt.store, strings.TrimSpace(tok)); err != nil {
			return fmt.Errorf("store token: %w", err)
		}
		fmt.Println("Token stored.")
		return nil
	}

	email, _ := cmd.Flags().GetString("email")
	email = strings.TrimSpace(email)
	if !format.ValidEmail(email) {
		return errors.New("a valid --email is required")
	}

	fromStdin, _ := cmd.Flags().GetBool("password-stdin")
	password, err := readPassword(cmd.InOrStdin(), os.Stderr, !fromStdin)
	if err != nil {
		return err
	}

	if err := rt.client.Login(cmd.Context(), email, password); err != nil {
		return err
	}
	fmt.Println("Signed in as " + email + ".")
	return nil
}

// readPassword reads one line from in. With prompt set and in a
// terminal, the prompt goes to out and input is not echoed.
func readPassword(in io.Reader, out io.Writer, prompt bool) (string, error) {
	if f, ok := in.(*os.File); ok && prompt && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		if len(b) == 0 {
			return "", errors.New("empty password")
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("empty password")
	}
	return line, nil
}

func runTheme(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println(state.Theme(rt.store, rt.cfg.UI.Theme))
		return nil
	}

	theme := args[0]
	if theme == "toggle" {
		next, err := state.ToggleTheme(rt.store, rt.cfg.UI.Theme)
		if err != nil {
			return err
		}
		fmt.Println(next)
		return nil
	}
	if err := state.SetTheme(rt.store, theme); err != nil {
		return err
	}
	fmt.Println(theme)
	return nil
}
