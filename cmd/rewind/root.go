/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package rewind

import (
	"fmt"
	"os"

	"github.com/dburkart/rewind/cmd/rewind/cli"
	"github.com/dburkart/rewind/cmd/rewind/compare"
	"github.com/dburkart/rewind/cmd/rewind/scope"
	"github.com/dburkart/rewind/cmd/rewind/shell"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version        = "develop"
	CommitHash     = "n/a"
	BuildTimestamp = "n/a"

	rootCmd = &cobra.Command{
		Use:   "rewind",
		Short: "Rewind compares query results against the past using time travel",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging()
			initLogLevel()
			initConfig(cmd.Root().PersistentFlags().Lookup("config").Value.String())
			initLogLevel()
			traceConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
)

func init() {
	// Configure the root binary options
	rootCmd.PersistentFlags().CountP("verbose", "v", "-v for debug logs (-vv for trace)")
	rootCmd.PersistentFlags().Bool("local", true, "Configures the logger to print readable logs")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the rewind config file (default ./config.toml)")
	rootCmd.PersistentFlags().StringP("env", "e", "dev", "Connection profile to use from the [connection.<env>] config blocks")
	rootCmd.PersistentFlags().String("dsn", "", "Connection string, overrides the profile (snowflake://, duckdb://, mariadb://, sqlite://)")
	rootCmd.PersistentFlags().String("dialect", "", "Time travel dialect, overrides the profile (snowflake, duckdb, mariadb)")
	rootCmd.PersistentFlags().String("timezone", "", "Location for timestamps without a zone (default UTC)")

	// Bind viper config to the root flags
	viper.BindPFlag("rewind.local", rootCmd.PersistentFlags().Lookup("local"))
	viper.BindPFlag("rewind.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("rewind.env", rootCmd.PersistentFlags().Lookup("env"))
	viper.BindPFlag("rewind.dsn", rootCmd.PersistentFlags().Lookup("dsn"))
	viper.BindPFlag("rewind.dialect", rootCmd.PersistentFlags().Lookup("dialect"))
	viper.BindPFlag("rewind.timezone", rootCmd.PersistentFlags().Lookup("timezone"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.SetVersionTemplate(fmt.Sprintf("rewind version: %s git_commit: %s build_time: %s\n", Version, CommitHash, BuildTimestamp))

	// Bind viper keys to REWIND_ environment variables
	for _, k := range []string{"local", "verbose", "env", "dsn", "dialect", "timezone"} {
		viper.BindEnv("rewind."+k, "REWIND_"+envName(k))
	}
	viper.AutomaticEnv()

	// Register commands on the root binary command
	scope.Command.Version = rootCmd.Version
	compare.Command.Version = rootCmd.Version
	shell.Command.Version = rootCmd.Version
	rootCmd.AddCommand(scope.Command)
	rootCmd.AddCommand(compare.Command)
	rootCmd.AddCommand(shell.Command)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			log.Error().Err(err).Msg("root command failed")
		}
		os.Exit(1)
	}
}
