/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"errors"
	"testing"
)

func TestParseREPLCommand(t *testing.T) {
	tt := []struct {
		test  string
		input string
		cmd   Command
	}{
		{"empty", "   ", Command{Type: CommandEmpty}},
		{"help", "HELP", Command{Type: CommandHelp}},
		{"exit", "exit", Command{Type: CommandExit}},
		{"quit", "quit", Command{Type: CommandExit}},
		{"when", `\when 7 days ago`, Command{Type: CommandWhen, Arg: "7 days ago"}},
		{"when no arg", `\when`, Command{Type: CommandWhen}},
		{"chart", `\chart out.html`, Command{Type: CommandChart, Arg: "out.html"}},
		{"x", `\X month`, Command{Type: CommandX, Arg: "month"}},
		{"y", `\y  total `, Command{Type: CommandY, Arg: "total"}},
		{"kind", `\kind line`, Command{Type: CommandKind, Arg: "line"}},
		{"output", `\output csv`, Command{Type: CommandOutput, Arg: "csv"}},
		{"query", " SELECT * FROM t; ", Command{Type: CommandQuery, Arg: "SELECT * FROM t;"}},
		{"query named exit", "exit_codes", Command{Type: CommandQuery, Arg: "exit_codes"}},
	}

	for _, tc := range tt {
		t.Run(tc.test, func(t *testing.T) {
			cmd, err := ParseREPLCommand(tc.input)
			if err != nil {
				t.Fatal(err)
			}
			if cmd != tc.cmd {
				t.Errorf("got %+v, want %+v", cmd, tc.cmd)
			}
		})
	}
}

func TestParseREPLCommandUnknown(t *testing.T) {
	_, err := ParseREPLCommand(`\drop everything`)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}
