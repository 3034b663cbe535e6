package cmd

import (
	"log"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/qrave1/RoomSync/internal/application/config"
	"github.com/qrave1/RoomSync/internal/infra/adapters/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [command] [args...]",
	Short: "Run database migrations",
	Long:  "Run goose commands (up, down, status, redo...) against the configured store.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			log.Fatalf("empty args: needed at least one arg")
		}

		cfg, err := config.New()
		if err != nil {
			log.Fatalf("could not load config: %v", err)
		}

		if cfg.Store.Driver == config.StoreDriverNone {
			log.Fatalf("STORE_DRIVER=none: nothing to migrate")
		}

		driver, dsn := cfg.DriverName()

		db, err := goose.OpenDBWithDriver(driver, dsn)
		if err != nil {
			log.Fatalf("goose: failed to open DB: %v", err)
		}

		defer func() {
			if err := db.Close(); err != nil {
				log.Fatalf("goose: failed to close DB: %v", err)
			}
		}()

		if err = postgres.Migrate(cmd.Context(), db, driver, args[0], args[1:]...); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
