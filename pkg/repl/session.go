/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"fmt"
	"strings"

	"github.com/dburkart/rewind/pkg/chart"
	"github.com/dburkart/rewind/pkg/table"
	"github.com/dburkart/rewind/pkg/timetravel"
	"github.com/pkg/errors"
)

// Session is the state the shell carries between queries.
type Session struct {
	When timetravel.PointInTime
	// ChartPath is where a chart of each comparison is written, empty for
	// none
	ChartPath string
	Chart     chart.Spec
	Output    string
}

func NewSession(when timetravel.PointInTime, output string) *Session {
	if output == "" {
		output = "text"
	}
	return &Session{When: when, Output: output, Chart: chart.Spec{Kind: chart.KindBoth}}
}

// ChartEnabled reports whether the session has enough settings to draw a
// chart.
func (s *Session) ChartEnabled() bool {
	return s.ChartPath != "" && s.Chart.XColumn != "" && s.Chart.YColumn != ""
}

// Apply updates the session for a backslash command and returns a message
// describing the resulting setting. Without an argument the current setting
// is described.
func (s *Session) Apply(cmd Command) (string, error) {
	switch cmd.Type {
	case CommandWhen:
		if cmd.Arg != "" {
			when, err := timetravel.ParsePointInTime(cmd.Arg)
			if err != nil {
				return "", err
			}
			s.When = when
		}
		return fmt.Sprintf("comparing against %s", s.When), nil
	case CommandChart:
		switch strings.ToLower(cmd.Arg) {
		case "":
		case "off", "none":
			s.ChartPath = ""
		default:
			s.ChartPath = cmd.Arg
		}
		if s.ChartPath == "" {
			return "charts off", nil
		}
		return fmt.Sprintf("writing charts to %s", s.ChartPath), nil
	case CommandX:
		if cmd.Arg != "" {
			s.Chart.XColumn = cmd.Arg
		}
		return fmt.Sprintf("x = %s", s.Chart.XColumn), nil
	case CommandY:
		if cmd.Arg != "" {
			s.Chart.YColumn = cmd.Arg
		}
		return fmt.Sprintf("y = %s", s.Chart.YColumn), nil
	case CommandKind:
		if cmd.Arg != "" {
			k, err := chart.ParseKind(cmd.Arg)
			if err != nil {
				return "", err
			}
			s.Chart.Kind = k
		}
		return fmt.Sprintf("kind = %s", s.Chart.Kind), nil
	case CommandOutput:
		if cmd.Arg != "" {
			if !validOutput(cmd.Arg) {
				return "", errors.Errorf("unsupported output format %q (one of %s)", cmd.Arg, strings.Join(table.Formats, ", "))
			}
			s.Output = strings.ToLower(cmd.Arg)
		}
		return fmt.Sprintf("output = %s", s.Output), nil
	}
	return "", errors.New("not a setting")
}

func validOutput(f string) bool {
	for _, o := range table.Formats {
		if strings.EqualFold(o, f) {
			return true
		}
	}
	return false
}
