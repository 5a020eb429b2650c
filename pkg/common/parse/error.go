/*
 * Copyright (c) 2022-2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"fmt"
	"strings"
)

type SyntaxError struct {
	Location Location
	Message  string
}

func (s SyntaxError) Error() string {
	return fmt.Sprintf("%s (at offset %d)", s.Message, s.Location.Start)
}

// FormatError renders the offending line of input with a caret underneath the
// error location. Multi-line input is narrowed to the line holding the error.
func (s SyntaxError) FormatError(input string) string {
	lineStart := strings.LastIndexByte(input[:clampOffset(s.Location.Start, input)], '\n') + 1
	lineEnd := strings.IndexByte(input[lineStart:], '\n')
	if lineEnd < 0 {
		lineEnd = len(input)
	} else {
		lineEnd += lineStart
	}

	start := s.Location.Start - lineStart
	if start < 0 {
		start = 0
	}
	repeat := s.Location.End - s.Location.Start - 1
	if repeat < 0 {
		repeat = 0
	}

	errorString := "Syntax error found in query:\n"
	errorString += input[lineStart:lineEnd]
	errorString += fmt.Sprintf("\n%s^%s ", strings.Repeat(" ", start), strings.Repeat("~", repeat))
	errorString += fmt.Sprintf("%s\n", s.Message)
	return errorString
}

func clampOffset(offset int, input string) int {
	if offset > len(input) {
		return len(input)
	}
	if offset < 0 {
		return 0
	}
	return offset
}
