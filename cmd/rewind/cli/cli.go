/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dburkart/rewind/pkg/timetravel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Logger returns the logger the root command stored in viper.
func Logger() zerolog.Logger {
	if l, ok := viper.Get("logger").(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}

// AddWhenFlags registers --days-ago and --at on cmd.
func AddWhenFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("days-ago", "d", 7, "Compare against this many days ago")
	cmd.Flags().StringP("at", "a", "", "Compare against an absolute timestamp")
	cmd.MarkFlagsMutuallyExclusive("days-ago", "at")
}

// When reads the point in time from the flags added by AddWhenFlags.
func When(cmd *cobra.Command) (timetravel.PointInTime, error) {
	at, err := cmd.Flags().GetString("at")
	if err != nil {
		return timetravel.PointInTime{}, err
	}
	if at != "" {
		when, err := timetravel.ParsePointInTime(at)
		if err != nil {
			return timetravel.PointInTime{}, err
		}
		return when, nil
	}

	days, err := cmd.Flags().GetInt("days-ago")
	if err != nil {
		return timetravel.PointInTime{}, err
	}
	when := timetravel.DaysAgo(days)
	return when, when.Validate(nil)
}

// ReadQuery returns the query text from a file, "-" for stdin, or the
// remaining arguments joined by spaces.
func ReadQuery(file string, args []string, stdin io.Reader) (string, error) {
	var query string
	switch {
	case file == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "could not read query from stdin")
		}
		query = string(b)
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", errors.Wrap(err, "could not read query file")
		}
		query = string(b)
	default:
		query = strings.Join(args, " ")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("no query given")
	}
	return query, nil
}

// ErrReported marks an error that has already been shown to the user.
var ErrReported = errors.New("already reported")

type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

func (e reportedError) Is(target error) bool { return target == ErrReported }

// Report prints err like PrintError and returns it marked as reported, so
// the root command exits non-zero without logging it again.
func Report(w io.Writer, err error, query string) error {
	PrintError(w, err, query)
	return reportedError{err}
}

// PrintError writes err to w, adding a caret diagnostic under the offending
// part of query when the builder rejected it.
func PrintError(w io.Writer, err error, query string) {
	var mqe *timetravel.MalformedQueryError
	if errors.As(err, &mqe) {
		fmt.Fprintln(w, timetravel.ErrMalformedQuery.Error()+":")
		fmt.Fprintln(w, mqe.FormatError(query))
		return
	}
	fmt.Fprintln(w, "error:", err)
}
