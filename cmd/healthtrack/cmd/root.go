package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/nfrund/healthtrack/internal/account"
	"github.com/nfrund/healthtrack/internal/config"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/logging"
	"github.com/nfrund/healthtrack/internal/session"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ExpiredNotice is printed once when the backend rejects the stored token.
const ExpiredNotice = "session expired, please log in again"

// errNotLoggedIn is returned by commands that need a session when none is stored.
var errNotLoggedIn = fmt.Errorf("%w: run `healthtrack login` first", domain.ErrNotAuthenticated)

// cli is the state shared by one invocation's commands.
type cli struct {
	cfg *config.Config
	fs  afero.Fs

	apiURL      string
	sessionFile string

	acc *account.Account
}

// NewRootCmd builds the command tree over cfg, keeping the session file on fs.
func NewRootCmd(cfg *config.Config, fs afero.Fs) *cobra.Command {
	c := &cli{cfg: cfg, fs: fs}

	root := &cobra.Command{
		Use:   "healthtrack",
		Short: "Terminal client for the health tracker",
		Long: `healthtrack is a command-line client for the health tracker backend.

It keeps the session token in a file between runs, so log in once and the
other commands reuse it until the backend rejects it.

Use "healthtrack [command] --help" for more information about a command.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.apiURL != "" {
				c.cfg.APIBaseURL = strings.TrimRight(c.apiURL, "/")
			}
			if c.sessionFile != "" {
				c.cfg.SessionFile = c.sessionFile
			}
			return c.cfg.Validate()
		},
	}
	root.PersistentFlags().StringVar(&c.apiURL, "api", "", "backend base URL (default $HEALTHTRACK_API_URL)")
	root.PersistentFlags().StringVar(&c.sessionFile, "session-file", "", "where the session token is kept (default $HEALTHTRACK_SESSION_FILE)")

	root.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.dashboardCmd(),
		c.alertsCmd(),
		c.waterCmd(),
		c.goalsCmd(),
		versionCmd(),
	)
	return root
}

// Execute runs the command tree against the real file system.
func Execute() {
	cfg := config.New()
	logging.NewWithWriter(os.Stderr)
	if err := NewRootCmd(cfg, afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}

// account opens the invocation's account and resolves the stored session.
// An expired token prints ExpiredNotice and leaves the session logged out.
func (c *cli) account(cmd *cobra.Command) (*account.Account, error) {
	if c.acc != nil {
		return c.acc, nil
	}
	f := &account.Factory{
		BaseURL: c.cfg.APIBaseURL,
		HTTP:    &http.Client{Timeout: c.cfg.HTTPTimeout},
	}
	storage := session.NewFileStorage(c.fs, c.cfg.SessionFile)
	acc := f.Open(storage, slog.Default(), session.OnExpired(func(context.Context) {
		fmt.Fprintln(cmd.ErrOrStderr(), ExpiredNotice)
	}))

	err := acc.Session.Resolve(cmd.Context())
	if err != nil && !errors.Is(err, domain.ErrSessionExpired) {
		slog.Debug("Stored session not restored", "path", storage.Path(), "error", err)
	}
	if errors.Is(err, context.Canceled) {
		return nil, err
	}
	c.acc = acc
	return acc, nil
}

// signedIn is account for commands that need a user.
func (c *cli) signedIn(cmd *cobra.Command) (*account.Account, error) {
	acc, err := c.account(cmd)
	if err != nil {
		return nil, err
	}
	if !acc.Session.State().Authenticated() {
		return nil, errNotLoggedIn
	}
	return acc, nil
}
