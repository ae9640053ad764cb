package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	database "github.com/artify-go/artify/internal/db"
	"github.com/artify-go/artify/internal/db/controller/role"
)

func init() { //nolint: gochecknoinits
	roleCmd.AddCommand(roleListCmd, roleAddCmd, roleDeleteCmd)
	rootCmd.AddCommand(roleCmd)
}

// openRoles opens the database and makes sure the roles table exists.
func openRoles() (*gorm.DB, error) {
	db, err := database.Open(&cfg)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

var (
	roleCmd = &cobra.Command{
		Use:   "role",
		Short: "Manage the roles and their permissions",
	}

	roleListCmd = &cobra.Command{
		Use:   "list",
		Short: "List roles with their permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openRoles()
			if err != nil {
				return err
			}

			roles, err := role.GetAll(db)
			if err != nil {
				return err
			}

			for _, r := range roles {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.Name, string(r.Permissions))
			}

			return nil
		},
	}

	roleAddCmd = &cobra.Command{
		Use:   "add <name> [permission...]",
		Short: "Create a role or replace its permissions, e.g. add editor create-posts view-posts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openRoles()
			if err != nil {
				return err
			}

			r, err := role.Set(db, args[0], args[1:])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.Name, string(r.Permissions))

			return nil
		},
	}

	roleDeleteCmd = &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			db, err := openRoles()
			if err != nil {
				return err
			}

			return role.DeleteByName(db, args[0])
		},
	}
)
