package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/directory"
	"github.com/productbazar/bazaaradmin/internal/output"
	"github.com/productbazar/bazaaradmin/internal/roles"
	"github.com/productbazar/bazaaradmin/internal/search"
	"github.com/productbazar/bazaaradmin/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	flagRole  string
	flagQuery string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect users and change their roles",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users, optionally filtered",
	Long: `List every user, narrowed by primary role and a free-text query.

  bazaaradmin users list
  bazaaradmin users list --role investor
  bazaaradmin users list --query "berlin maker"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireAdmin(cmd.Context()); err != nil {
			return err
		}

		var role roles.Role
		if flagRole != "" {
			r, err := roles.Parse(flagRole)
			if err != nil {
				return err
			}
			role = r
		}

		users, err := apiClient.ListAllUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing users: %w", err)
		}
		users = search.Filter(users, flagQuery, role)

		if flagJSON {
			output.JSON(users)
			return nil
		}

		output.UserTable(users)
		return nil
	},
}

var usersShowCmd = &cobra.Command{
	Use:   "show <id|email>",
	Short: "Show a user's profile, roles and capabilities",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireAdmin(cmd.Context()); err != nil {
			return err
		}

		u, err := findUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			output.JSON(u)
			return nil
		}

		output.UserDetail(u)
		return nil
	},
}

var usersSetRoleCmd = &cobra.Command{
	Use:   "set-role <id|email> <role>",
	Short: "Change a user's primary role",
	Long: `Change a user's primary role. Setting the role the user already holds
sends nothing.

  bazaaradmin users set-role jane@startup.io investor`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		me, err := requireAdmin(cmd.Context())
		if err != nil {
			return err
		}

		role, err := roles.Parse(args[1])
		if err != nil {
			return err
		}

		u, err := findUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if u.Role == role {
			fmt.Printf("%s already has role %s\n", u.DisplayName(), role.Label())
			return nil
		}

		if err := apiClient.UpdateUserRole(cmd.Context(), u.ID, role); err != nil {
			return fmt.Errorf("updating role: %s", api.Message(err, "Failed to update role"))
		}
		logger.InfoWithUser(me.ID, "role_updated", map[string]interface{}{
			"user_id": u.ID,
			"from":    string(u.Role),
			"to":      string(role),
		})

		u.Role = role
		if flagJSON {
			output.JSON(u)
			return nil
		}
		fmt.Printf("Updated %s's role to %s\n", u.DisplayName(), role.Label())
		return nil
	},
}

var usersSetSecondaryCmd = &cobra.Command{
	Use:   "set-secondary <id|email> [role...]",
	Short: "Replace a user's secondary roles",
	Long: `Replace a user's secondary roles with the given list. With no roles the
list is cleared. Only ` + secondaryChoices() + ` are accepted.

  bazaaradmin users set-secondary jane@startup.io maker investor
  bazaaradmin users set-secondary jane@startup.io`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		me, err := requireAdmin(cmd.Context())
		if err != nil {
			return err
		}

		set := roles.NewSet()
		for _, arg := range args[1:] {
			r, err := roles.Parse(arg)
			if err != nil {
				return err
			}
			if !r.IsSecondaryOption() {
				return fmt.Errorf("%s cannot be a secondary role (choose from %s)", r.Label(), secondaryChoices())
			}
			set.Add(r)
		}

		u, err := findUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		secondary := set.Slice()
		if err := apiClient.UpdateSecondaryRoles(cmd.Context(), u.ID, secondary); err != nil {
			return fmt.Errorf("updating secondary roles: %s", api.Message(err, "Failed to update secondary roles"))
		}
		logger.InfoWithUser(me.ID, "secondary_roles_updated", map[string]interface{}{
			"user_id": u.ID,
			"count":   len(secondary),
		})

		u.SecondaryRoles = secondary
		if flagJSON {
			output.JSON(u)
			return nil
		}
		fmt.Printf("Updated secondary roles for %s: %s\n", u.DisplayName(), output.RoleList(secondary))
		return nil
	},
}

func init() {
	usersListCmd.Flags().StringVar(&flagRole, "role", "", "Only users with this primary role")
	usersListCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "Free-text filter (name, email, phone, role, company, location)")

	usersCmd.AddCommand(usersListCmd, usersShowCmd, usersSetRoleCmd, usersSetSecondaryCmd)
	rootCmd.AddCommand(usersCmd)
}

// findUser resolves ref as a user id first, then as an email address.
func findUser(ctx context.Context, ref string) (api.User, error) {
	users, err := apiClient.ListAllUsers(ctx)
	if err != nil {
		return api.User{}, fmt.Errorf("listing users: %w", err)
	}

	dir := directory.New()
	if err := dir.Replace(users); err != nil {
		return api.User{}, err
	}
	if u, ok := dir.Get(ref); ok {
		return u, nil
	}
	for _, u := range dir.All() {
		if u.Email != "" && strings.EqualFold(u.Email, ref) {
			return u, nil
		}
	}
	return api.User{}, fmt.Errorf("user not found: %s", ref)
}

func secondaryChoices() string {
	opts := roles.SecondaryOptions()
	names := make([]string, len(opts))
	for i, r := range opts {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
