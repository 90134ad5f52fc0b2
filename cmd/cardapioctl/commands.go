package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dogao/cardapio/internal/auth"
	"github.com/dogao/cardapio/internal/config"
	"github.com/dogao/cardapio/internal/repository"
	"github.com/dogao/cardapio/pkg/logger"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cardapioctl",
		Short:         "Maintenance commands for the cardapio database and admin account",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newInitDBCmd(), newHashPasswordCmd())
	return root
}

func newInitDBCmd() *cobra.Command {
	var driver, dsn, logLevel string

	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the tables and seed the default categories",
		Long: "Creates or updates the schema and inserts the default menu categories when the\n" +
			"category table is empty. Settings come from DB_DRIVER and DATABASE_URL unless overridden.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			if driver != "" {
				cfg.Driver = strings.ToLower(driver)
			}
			if dsn != "" {
				cfg.URL = dsn
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			db, err := repository.Open(cfg, logger.NewWithWriter(cmd.ErrOrStderr(), logLevel))
			if err != nil {
				return err
			}
			defer repository.Close(db)

			if err := repository.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			seeded, err := repository.Seed(cmd.Context(), db)
			if err != nil {
				return err
			}

			if seeded == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Banco de dados já inicializado.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Banco de dados inicializado com %d categorias.\n", seeded)
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "", "database driver (sqlite, postgres or mysql)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "database connection string")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Long:  "Hashes the password given as argument, or the first line of standard input when omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
