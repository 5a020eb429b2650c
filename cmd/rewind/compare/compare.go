/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package compare

import (
	"context"
	"strings"

	"github.com/dburkart/rewind/cmd/rewind/cli"
	"github.com/dburkart/rewind/pkg/chart"
	"github.com/dburkart/rewind/pkg/compare"
	"github.com/dburkart/rewind/pkg/profile"
	"github.com/dburkart/rewind/pkg/report"
	"github.com/dburkart/rewind/pkg/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "compare [query]",
	Short: "Run a query now and in the past and print both results",

	RunE: func(cmd *cobra.Command, args []string) error {
		log := cli.Logger()

		output := strings.ToLower(viper.GetString("compare.output"))
		if !validOutput(output) {
			return errors.Errorf("unsupported output format %q (one of %s)", output, strings.Join(table.Formats, ", "))
		}

		file, _ := cmd.Flags().GetString("file")
		query, err := cli.ReadQuery(file, args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		when, err := cli.When(cmd)
		if err != nil {
			return err
		}

		spec, err := chartSpec()
		if err != nil {
			return err
		}

		p := profile.Load(viper.GetViper())
		b, err := p.Builder()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if timeout := viper.GetDuration("compare.timeout"); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		db, err := p.Connect(ctx, log)
		if err != nil {
			return err
		}
		defer db.Close()

		opts := []compare.Option{compare.WithLogger(log)}
		if viper.GetBool("compare.scoped-current") {
			opts = append(opts, compare.WithScopedCurrent())
		}

		cmp, err := compare.New(b, opts...).CompareSnapshots(ctx, db, query, when)
		if err != nil {
			return cli.Report(cmd.ErrOrStderr(), err, query)
		}

		if err := report.WriteComparison(cmd.OutOrStdout(), cmp, output); err != nil {
			return err
		}

		if path := viper.GetString("compare.chart"); path != "" {
			if err := report.WriteChart(path, cmp, spec); err != nil {
				return err
			}
			log.Info().Str("file", path).Msg("wrote chart")
		}
		return nil
	},
}

func chartSpec() (chart.Spec, error) {
	kind, err := chart.ParseKind(viper.GetString("compare.kind"))
	if err != nil {
		return chart.Spec{}, err
	}
	spec := chart.Spec{
		XColumn:         viper.GetString("compare.x"),
		YColumn:         viper.GetString("compare.y"),
		Title:           viper.GetString("compare.title"),
		CurrentLabel:    viper.GetString("compare.current-label"),
		HistoricalLabel: viper.GetString("compare.historical-label"),
		DateFormat:      viper.GetString("compare.date-format"),
		Kind:            kind,
	}
	if viper.GetString("compare.chart") != "" && (spec.XColumn == "" || spec.YColumn == "") {
		return chart.Spec{}, errors.New("--chart needs both --x and --y")
	}
	return spec, nil
}

func validOutput(f string) bool {
	for _, o := range table.Formats {
		if o == f {
			return true
		}
	}
	return false
}

func init() {
	// Flags for this command
	Command.Flags().StringP("file", "f", "", "Read the query from a file (- for stdin)")
	Command.Flags().StringP("output", "o", "text", "Output format of results [csv, json, text]")
	Command.Flags().Bool("scoped-current", false, "Scope the current query to now instead of running it unscoped")
	Command.Flags().Duration("timeout", 0, "Give up on the comparison after this long (0 for no limit)")
	Command.Flags().String("chart", "", "Write an HTML chart of the comparison to this file")
	Command.Flags().String("x", "", "Column for the chart's x axis")
	Command.Flags().String("y", "", "Column for the chart's y axis")
	Command.Flags().String("kind", "both", "Chart kind [bar, line, both]")
	Command.Flags().String("title", "", "Chart title")
	Command.Flags().String("current-label", "", "Label of the current series")
	Command.Flags().String("historical-label", "", "Label of the historical series")
	Command.Flags().String("date-format", "Jan-2006", "Go layout for date values on the x axis")
	cli.AddWhenFlags(Command)

	// Bind flags to viper
	for _, f := range []string{"output", "scoped-current", "timeout", "chart", "x", "y", "kind", "title", "current-label", "historical-label", "date-format"} {
		viper.BindPFlag("compare."+f, Command.Flags().Lookup(f))
	}
}
