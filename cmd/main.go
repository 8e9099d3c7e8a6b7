/*
Copyright 2025 Sireline Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sireline/sireline"
	"github.com/sireline/sireline/config"
	"github.com/sireline/sireline/database"
	"github.com/sireline/sireline/internal/notification"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CLI represents the command-line application, encapsulating the root Cobra command.
type CLI struct {
	cmd *cobra.Command
}

// serviceInstance holds the Sireline instance and its configuration for commands to use.
type serviceInstance struct {
	sireline *sireline.Sireline
	cnf      *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error using Logrus.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun sets up the configuration and initializes the Sireline instance before
// running any command.
func preRun(app *serviceInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig("sireline.json")
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		newService, err := setupService(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.sireline = newService
		app.cnf = cnf

		return nil
	}
}

// setupService creates and initializes a new Sireline instance based on the provided
// configuration.
func setupService(cfg *config.Configuration) (*sireline.Sireline, error) {
	db, err := database.NewDataSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("error getting datasource: %v", err)
	}

	return sireline.NewSireline(db), nil
}

// NewCLI creates the command-line interface for the Sireline application.
func NewCLI() *CLI {
	var configFile string
	b := &serviceInstance{}

	var rootCmd = &cobra.Command{
		Use:   "sireline",
		Short: "Breeding match coordination service",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./sireline.json", "Configuration file for sireline")

	rootCmd.PersistentPreRunE = preRun(b)

	rootCmd.AddCommand(serverCommands(b))
	rootCmd.AddCommand(migrateCommands())

	return &CLI{cmd: rootCmd}
}

// executeCLI runs the root command, handling any errors that occur during execution.
func (w CLI) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
