package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/config"
	"github.com/productbazar/bazaaradmin/internal/console"
	"github.com/productbazar/bazaaradmin/pkg/logger"
	"github.com/spf13/cobra"
)

// Commands log to stderr; keep it quiet unless asked.
const defaultLogLevel = "warn"

var (
	flagJSON      bool
	flagServerURL string

	cfg       *config.Config
	apiClient *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "bazaaradmin",
	Short: "ProductBazar admin tools: role management from the terminal",
	Long: `bazaaradmin manages ProductBazar user roles without leaving the terminal.

Get started:
  bazaaradmin login --token X          Store an admin bearer token
  bazaaradmin console                  Open the interactive role console
  bazaaradmin users list --role maker  List users holding a primary role
  bazaaradmin users set-role ID admin  Change a user's primary role
  bazaaradmin sandbox serve            Run a local API with demo data`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Resolve()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagServerURL != "" {
			cfg.ServerURL = flagServerURL
		}
		level := cfg.LogLevel
		if level == "" {
			level = defaultLogLevel
		}
		if err := logger.Init(logger.Config{Level: level, Output: "stderr"}); err != nil {
			return fmt.Errorf("initialising logger: %w", err)
		}
		apiClient = api.NewClient(cfg.ServerURL, cfg.Token)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "Override server URL (default: from config or http://localhost:8080)")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// requireAuth is a helper that returns an error if no token is configured.
func requireAuth() error {
	if cfg == nil || !cfg.HasToken() {
		return fmt.Errorf("not authenticated: run \"bazaaradmin login --token <token>\" first")
	}
	return nil
}

var errNotAdmin = errors.New("admin access required: your account holds neither a primary nor a secondary admin role")

// requireAdmin applies the console's admin gate to the current session.
func requireAdmin(ctx context.Context) (*api.User, error) {
	if err := requireAuth(); err != nil {
		return nil, err
	}
	me, err := apiClient.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching current user: %w", err)
	}
	if console.Evaluate(console.Session{User: me, Initialized: true}) != console.GateOpen {
		return nil, errNotAdmin
	}
	return me, nil
}
