/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scope

import (
	"fmt"

	"github.com/dburkart/rewind/cmd/rewind/cli"
	"github.com/dburkart/rewind/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "scope [query]",
	Short: "Print a query with its time travel clause inserted",
	Long: `Print a query with its time travel clause inserted after every source
relation. The query is read from --file, from stdin with --file -, or from the
arguments. Nothing is sent to the database.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		log := cli.Logger()

		file, _ := cmd.Flags().GetString("file")
		query, err := cli.ReadQuery(file, args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		when, err := cli.When(cmd)
		if err != nil {
			return err
		}

		b, err := profile.Load(viper.GetViper()).Builder()
		if err != nil {
			return err
		}

		scoped, err := b.BuildScopedQuery(query, when)
		if err != nil {
			return cli.Report(cmd.ErrOrStderr(), err, query)
		}

		log.Debug().Str("dialect", b.DialectName()).Stringer("when", when).Msg("scoped query")
		fmt.Fprintln(cmd.OutOrStdout(), scoped)
		return nil
	},
}

func init() {
	// Flags for this command
	Command.Flags().StringP("file", "f", "", "Read the query from a file (- for stdin)")
	cli.AddWhenFlags(Command)
}
