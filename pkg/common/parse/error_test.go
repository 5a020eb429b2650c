/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import "testing"

func TestFormatErrorSingleLine(t *testing.T) {
	input := "SELECT * FROM"
	err := SyntaxError{Location: Location{Start: 9, End: 13}, Message: "expected a relation"}

	want := "Syntax error found in query:\n" +
		"SELECT * FROM\n" +
		"         ^~~~ expected a relation\n"

	if got := err.FormatError(input); got != want {
		t.Errorf("wanted:\n%s\ngot:\n%s", want, got)
	}
}

func TestFormatErrorMultiLine(t *testing.T) {
	input := "SELECT a\nFROM (SELECT 1\nWHERE x"
	err := SyntaxError{Location: Location{Start: 14, End: 15}, Message: "unclosed parenthesis"}

	want := "Syntax error found in query:\n" +
		"FROM (SELECT 1\n" +
		"     ^ unclosed parenthesis\n"

	if got := err.FormatError(input); got != want {
		t.Errorf("wanted:\n%s\ngot:\n%s", want, got)
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	err := SyntaxError{Location: Location{Start: 4, End: 6}, Message: "oops"}
	if err.Error() != "oops (at offset 4)" {
		t.Errorf("unexpected error string %q", err.Error())
	}
}
