package cmd

import (
	"fmt"

	"github.com/productbazar/bazaaradmin/internal/output"
	"github.com/spf13/cobra"
)

// Version is the CLI version, injected at build time:
//
//	go build -ldflags "-X github.com/productbazar/bazaaradmin/cmd.Version=1.2.3"
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI version",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagJSON {
			output.JSON(map[string]string{"cliVersion": Version, "server": cfg.ServerURL})
			return nil
		}
		fmt.Printf("bazaaradmin %s (server %s)\n", Version, cfg.ServerURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
