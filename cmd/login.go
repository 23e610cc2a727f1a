package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/config"
	"github.com/spf13/cobra"
)

var flagToken string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token for your ProductBazar server",
	Long: `Validate a bearer token against the server and store it in the config file.

  bazaaradmin login --token eyJhbGciOi...

Against a local sandbox, mint one with "bazaaradmin sandbox token".`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&flagToken, "token", "", "Bearer token")
	_ = loginCmd.MarkFlagRequired("token")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	client := api.NewClient(cfg.ServerURL, flagToken)
	me, err := client.CurrentUser(cmd.Context())
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return fmt.Errorf("invalid token: server returned 401")
		}
		return fmt.Errorf("validating token: %w", err)
	}

	// persist only what the file held plus the new token, not env overrides
	stored, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	stored.ServerURL = cfg.ServerURL
	stored.Token = flagToken
	if err := config.Save(stored); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", me.DisplayName(), me.Role.Label())
	if !me.IsAdmin() {
		fmt.Println("Note: this account is not an admin; the console and role commands will refuse it.")
	}
	return nil
}
