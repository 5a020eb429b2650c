/*
 * Copyright (c) 2022-2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

import "strings"

type TokenType int

const (
	TOK_INVALID TokenType = iota
	TOK_EOF

	TOK_IDENTIFIER
	TOK_QUOTED_IDENTIFIER
	TOK_KEYWORD
	TOK_NUMBER
	TOK_STRING
	TOK_PLACEHOLDER
	TOK_OPERATOR

	TOK_COMMA
	TOK_DOT
	TOK_SEMICOLON
	TOK_PAREN_L
	TOK_PAREN_R
)

func (t TokenType) ToString() string {
	switch t {
	case TOK_INVALID:
		return "TOK_INVALID"
	case TOK_EOF:
		return "TOK_EOF"
	case TOK_IDENTIFIER:
		return "TOK_IDENTIFIER"
	case TOK_QUOTED_IDENTIFIER:
		return "TOK_QUOTED_IDENTIFIER"
	case TOK_KEYWORD:
		return "TOK_KEYWORD"
	case TOK_NUMBER:
		return "TOK_NUMBER"
	case TOK_STRING:
		return "TOK_STRING"
	case TOK_PLACEHOLDER:
		return "TOK_PLACEHOLDER"
	case TOK_OPERATOR:
		return "TOK_OPERATOR"
	case TOK_COMMA:
		return "TOK_COMMA"
	case TOK_DOT:
		return "TOK_DOT"
	case TOK_SEMICOLON:
		return "TOK_SEMICOLON"
	case TOK_PAREN_L:
		return "TOK_PAREN_L"
	case TOK_PAREN_R:
		return "TOK_PAREN_R"
	}
	return "TOK_UNKNOWN"
}

// Words the scanner reports as TOK_KEYWORD rather than TOK_IDENTIFIER. Only
// words that shape where a relation can appear are listed; everything else is
// an identifier as far as the scanner is concerned.
var keywords = map[string]struct{}{
	"SELECT":          {},
	"WITH":            {},
	"RECURSIVE":       {},
	"AS":              {},
	"FROM":            {},
	"JOIN":            {},
	"INNER":           {},
	"LEFT":            {},
	"RIGHT":           {},
	"FULL":            {},
	"OUTER":           {},
	"CROSS":           {},
	"NATURAL":         {},
	"ASOF":            {},
	"LATERAL":         {},
	"ON":              {},
	"USING":           {},
	"WHERE":           {},
	"GROUP":           {},
	"BY":              {},
	"HAVING":          {},
	"QUALIFY":         {},
	"WINDOW":          {},
	"ORDER":           {},
	"LIMIT":           {},
	"OFFSET":          {},
	"FETCH":           {},
	"UNION":           {},
	"INTERSECT":       {},
	"EXCEPT":          {},
	"MINUS":           {},
	"AT":              {},
	"BEFORE":          {},
	"CHANGES":         {},
	"FOR":             {},
	"SYSTEM_TIME":     {},
	"TABLE":           {},
	"UNNEST":          {},
	"VALUES":          {},
	"PIVOT":           {},
	"UNPIVOT":         {},
	"SAMPLE":          {},
	"TABLESAMPLE":     {},
	"MATCH_RECOGNIZE": {},
}

// IsKeyword reports whether word is a keyword, ignoring case.
func IsKeyword(word string) bool {
	_, ok := keywords[strings.ToUpper(word)]
	return ok
}
