/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2022-2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package shell

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/chzyer/readline"
	"github.com/dburkart/rewind/cmd/rewind/cli"
	"github.com/dburkart/rewind/pkg/chart"
	"github.com/dburkart/rewind/pkg/compare"
	"github.com/dburkart/rewind/pkg/metrics"
	"github.com/dburkart/rewind/pkg/profile"
	"github.com/dburkart/rewind/pkg/repl"
	"github.com/dburkart/rewind/pkg/report"
	"github.com/dburkart/rewind/pkg/table"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "shell",
	Short: "Interactive prompt that compares each query against the past",

	RunE: func(cmd *cobra.Command, args []string) error {
		log := cli.Logger()

		when, err := cli.When(cmd)
		if err != nil {
			return err
		}

		session := repl.NewSession(when, viper.GetString("shell.output"))
		if _, err := session.Apply(repl.Command{Type: repl.CommandOutput, Arg: session.Output}); err != nil {
			return err
		}

		p := profile.Load(viper.GetViper())
		b, err := p.Builder()
		if err != nil {
			return err
		}

		ctx := context.Background()
		db, err := p.Connect(ctx, log)
		if err != nil {
			return err
		}
		defer db.Close()

		store := metrics.NewStore()
		if port := viper.GetInt("shell.prom-port"); port > 0 {
			go serveMetrics(log, port, store)
		}

		c := compare.New(b, compare.WithLogger(log), compare.WithMetrics(store))
		readlinePrompt(ctx, log, c, db, session)
		return nil
	},
}

func init() {
	// Flags for this command
	Command.Flags().StringP("output", "o", "text", "Output format of results [csv, json, text]")
	Command.Flags().Int("prom-port", 0, "Serve /metrics on this port (0 to disable)")
	cli.AddWhenFlags(Command)

	// Bind flags to viper
	viper.BindPFlag("shell.output", Command.Flags().Lookup("output"))
	viper.BindPFlag("shell.prom-port", Command.Flags().Lookup("prom-port"))
}

func serveMetrics(log zerolog.Logger, port int, store metrics.Store) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", store.Handler())

	log.Info().Int("port", port).Msg("/metrics endpoint started")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
		log.Error().Err(err).Msg("metrics endpoint stopped")
	}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func settingItems() []readline.PrefixCompleterInterface {
	names := make([]string, 0, len(repl.Settings))
	for k := range repl.Settings {
		names = append(names, k)
	}
	sort.Strings(names)

	ret := []readline.PrefixCompleterInterface{}
	for _, n := range names {
		switch repl.Settings[n] {
		case repl.CommandKind:
			ret = append(ret, readline.PcItem(n,
				readline.PcItem(string(chart.KindBar)),
				readline.PcItem(string(chart.KindLine)),
				readline.PcItem(string(chart.KindBoth)),
			))
		case repl.CommandOutput:
			formats := []readline.PrefixCompleterInterface{}
			for _, f := range table.Formats {
				formats = append(formats, readline.PcItem(f))
			}
			ret = append(ret, readline.PcItem(n, formats...))
		default:
			ret = append(ret, readline.PcItem(n))
		}
	}
	return ret
}

func readlinePrompt(ctx context.Context, log zerolog.Logger, c *compare.Comparator, exec compare.Executor, session *repl.Session) {
	// Configure the completer
	items := append(settingItems(),
		readline.PcItem("help"),
		readline.PcItem("exit"),
		readline.PcItem("SELECT"),
		readline.PcItem("WITH"),
	)
	completer := readline.NewPrefixCompleter(items...)

	// Setup the readline executor
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36mrewind>\033[0m ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Error().Err(err).Msg("unable to start the prompt")
		return
	}
	defer rl.Close()

	out := rl.Stdout()
	fmt.Fprintf(out, "comparing against %s, type help for commands\n", session.When)

	// Handle input
	for {
		ln := rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}

		cmd, err := repl.ParseREPLCommand(ln.Line)
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}

		switch cmd.Type {
		case repl.CommandEmpty:
			continue
		case repl.CommandHelp:
			fmt.Fprintln(out, "usage:")
			fmt.Fprintln(out, completer.Tree("    "))
			fmt.Fprintln(out, "any other line is run as a query")
		case repl.CommandExit:
			return
		case repl.CommandQuery:
			runQuery(ctx, log, out, c, exec, session, cmd.Arg)
		default:
			msg, err := session.Apply(cmd)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintln(out, msg)
		}
	}
	rl.Clean()
}

func runQuery(ctx context.Context, log zerolog.Logger, out io.Writer, c *compare.Comparator, exec compare.Executor, session *repl.Session, query string) {
	cmp, err := c.CompareSnapshots(ctx, exec, query, session.When)
	if err != nil {
		cli.PrintError(out, err, query)
		return
	}

	if err := report.WriteComparison(out, cmp, session.Output); err != nil {
		log.Error().Err(err).Send()
		return
	}

	if session.ChartEnabled() {
		if err := report.WriteChart(session.ChartPath, cmp, session.Chart); err != nil {
			fmt.Fprintln(out, "error:", err)
			return
		}
		fmt.Fprintf(out, "wrote chart to %s\n", session.ChartPath)
	}
}
