package cmd

import (
	"fmt"

	"github.com/productbazar/bazaaradmin/internal/output"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		me, err := apiClient.CurrentUser(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching user: %w", err)
		}

		if flagJSON {
			output.JSON(me)
			return nil
		}

		output.UserDetail(*me)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
