package cmd

import (
	"errors"
	"fmt"
	"net"

	"github.com/productbazar/bazaaradmin/internal/output"
	"github.com/productbazar/bazaaradmin/internal/sandbox"
	"github.com/productbazar/bazaaradmin/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	flagPort  string
	flagEmail string
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run a local ProductBazar admin API for trying the console",
	Long: `Run a local copy of the admin role API backed by SQLite (or Postgres when
SANDBOX_DB_DRIVER=postgres), seeded with demo users.

  bazaaradmin sandbox serve --port 8080
  bazaaradmin sandbox token --email jane@startup.io`,
}

var sandboxServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sandbox API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(logger.Config{Level: "info", Output: "stdout"}); err != nil {
			return fmt.Errorf("initialising logger: %w", err)
		}

		scfg := sandbox.LoadConfig()
		if flagPort != "" {
			scfg.Server.Port = flagPort
		}

		db, err := sandbox.Connect(scfg.DB, scfg.Seed)
		if err != nil {
			return err
		}
		tokens := sandbox.NewTokens(scfg.JWT)

		if token, admin, err := sandbox.IssueFor(db, tokens, ""); err == nil {
			fmt.Printf("Admin token for %s:\n  %s\n\n", admin.Email, token)
			fmt.Printf("  bazaaradmin login --server http://localhost:%s --token %s\n\n", scfg.Server.Port, token)
		} else if !errors.Is(err, sandbox.ErrUserNotFound) {
			return fmt.Errorf("issuing admin token: %w", err)
		}

		ln, err := net.Listen("tcp", ":"+scfg.Server.Port)
		if err != nil {
			return fmt.Errorf("listening on port %s: %w", scfg.Server.Port, err)
		}
		return sandbox.Serve(cmd.Context(), sandbox.NewApp(db, tokens), ln)
	},
}

var sandboxTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for a seeded user",
	Long: `Mint a bearer token for a seeded user, by default the first admin. The
token is valid against any sandbox sharing the same JWT_SECRET.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scfg := sandbox.LoadConfig()
		db, err := sandbox.Connect(scfg.DB, scfg.Seed)
		if err != nil {
			return err
		}

		token, user, err := sandbox.IssueFor(db, sandbox.NewTokens(scfg.JWT), flagEmail)
		if errors.Is(err, sandbox.ErrUserNotFound) {
			return fmt.Errorf("no seeded user matches %q", flagEmail)
		}
		if err != nil {
			return fmt.Errorf("issuing token: %w", err)
		}

		if flagJSON {
			output.JSON(map[string]string{"token": token, "userId": user.ID, "role": string(user.Role)})
			return nil
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	sandboxServeCmd.Flags().StringVar(&flagPort, "port", "", "Listen port (default: SANDBOX_PORT or 8080)")
	sandboxTokenCmd.Flags().StringVar(&flagEmail, "email", "", "Seeded user email (default: first admin)")

	sandboxCmd.AddCommand(sandboxServeCmd, sandboxTokenCmd)
	rootCmd.AddCommand(sandboxCmd)
}
