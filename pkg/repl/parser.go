/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"strings"

	"github.com/pkg/errors"
)

type CommandType int

const (
	CommandEmpty CommandType = iota
	CommandQuery
	CommandHelp
	CommandExit
	CommandWhen
	CommandChart
	CommandX
	CommandY
	CommandKind
	CommandOutput
)

var ErrUnknownCommand = errors.New("unknown command")

// Names of the backslash commands, used for completion and help.
var Settings = map[string]CommandType{
	`\when`:   CommandWhen,
	`\chart`:  CommandChart,
	`\x`:      CommandX,
	`\y`:      CommandY,
	`\kind`:   CommandKind,
	`\output`: CommandOutput,
}

type Command struct {
	Type CommandType
	// Arg holds the query text, or the argument to a backslash command
	Arg string
}

// ParseREPLCommand parses a line of input from the shell
//
// This function assumes there is no '\n'
func ParseREPLCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Type: CommandEmpty}, nil
	}

	// all commands have a space after them, if not then they are command only
	// like \when
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToUpper(cmd) {
	case "HELP":
		if arg == "" {
			return Command{Type: CommandHelp}, nil
		}
	case "EXIT", "QUIT":
		if arg == "" {
			return Command{Type: CommandExit}, nil
		}
	}

	if strings.HasPrefix(cmd, `\`) {
		t, ok := Settings[strings.ToLower(cmd)]
		if !ok {
			return Command{}, errors.Wrap(ErrUnknownCommand, cmd)
		}
		return Command{Type: t, Arg: arg}, nil
	}

	return Command{Type: CommandQuery, Arg: line}, nil
}
