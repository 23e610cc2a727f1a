package cmd

import (
	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/directory"
	"github.com/productbazar/bazaaradmin/internal/output"
	"github.com/productbazar/bazaaradmin/internal/roles"
	"github.com/productbazar/bazaaradmin/pkg/logger"
	"github.com/spf13/cobra"
)

type roleRow struct {
	ID        roles.Role `json:"id"`
	Label     string     `json:"label"`
	Icon      string     `json:"icon"`
	Tint      string     `json:"tint"`
	Secondary bool       `json:"secondaryOption"`
	Users     *int       `json:"users,omitempty"`
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the role catalogue",
	Long: `List every primary role with its label and icon. When you are logged in
as an admin the table also counts users per primary role.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		counts := roleCounts(cmd)

		if flagJSON {
			rows := make([]roleRow, 0, len(roles.All()))
			for _, r := range roles.All() {
				meta := r.Meta()
				row := roleRow{
					ID:        r,
					Label:     meta.Label,
					Icon:      meta.Icon,
					Tint:      meta.Tint,
					Secondary: r.IsSecondaryOption(),
				}
				if counts != nil {
					n := counts[r]
					row.Users = &n
				}
				rows = append(rows, row)
			}
			output.JSON(rows)
			return nil
		}

		output.RoleTable(counts)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

// roleCounts returns nil when the caller cannot list users.
func roleCounts(cmd *cobra.Command) map[roles.Role]int {
	if _, err := requireAdmin(cmd.Context()); err != nil {
		logger.Debug("role_counts_skipped", map[string]interface{}{"reason": err.Error()})
		return nil
	}
	users, err := apiClient.ListAllUsers(cmd.Context())
	if err != nil {
		logger.Warn("role_counts_failed", map[string]interface{}{"error": api.Message(err, "Failed to load users")})
		return nil
	}
	dir := directory.New()
	if err := dir.Replace(users); err != nil {
		return nil
	}
	counts := make(map[roles.Role]int, len(roles.All()))
	for _, r := range roles.All() {
		counts[r] = dir.CountByRole(r)
	}
	return counts
}
