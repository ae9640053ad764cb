package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/artify-go/artify/internal/authz"
	database "github.com/artify-go/artify/internal/db"
)

func init() { //nolint: gochecknoinits
	registerCmd.Flags().BoolVar(&adrLayout, "adr", false, "Use the domain oriented layout regardless of the config")

	rootCmd.AddCommand(registerCmd)
}

var (
	adrLayout bool

	registerCmd = &cobra.Command{
		Use:     "register-authorization",
		Aliases: []string{"artify:register-authorization"},
		Short:   "Setting Artify Authorization Policy & Gates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if adrLayout {
				cfg.Authorization.ADR = true
			}

			db, err := database.OpenExisting(&cfg)
			if err != nil {
				return err
			}

			source := authz.DBSource{
				DB:     db,
				Table:  cfg.Authorization.RolesTable,
				Column: cfg.Authorization.PermissionsColumn,
			}

			generator, err := authz.NewGenerator(cfg.Authorization, afero.NewOsFs(), source)
			if err != nil {
				return err
			}

			result, err := generator.Run(cmd.Context())
			if err != nil {
				return err
			}

			log.Info().
				Int("policies", len(result.Policies)).
				Str("provider", result.Provider).
				Bool("registered", result.ProviderRegistered).
				Msg("authorization registered")

			return nil
		},
	}
)
