package main

import (
	"log"

	"github.com/sireline/sireline/config"
	"github.com/sireline/sireline/database"
	"github.com/spf13/cobra"
)

// migrateCommands returns the Cobra command that creates the database schema.
func migrateCommands() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "create sireline tables",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Fetch()
			if err != nil {
				log.Fatal(err)
			}

			if _, err := database.ConnectDB(cfg.DataSource.Dns); err != nil {
				log.Fatal(err)
			}

			log.Println("database schema is up to date")
		},
	}

	return cmd
}
