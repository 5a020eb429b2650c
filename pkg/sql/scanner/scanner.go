/*
 * Copyright (c) 2022-2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dburkart/rewind/pkg/common/parse"
)

// Scanner splits SQL text into tokens. It knows just enough SQL to step over
// string literals, quoted identifiers and comments without misreading their
// contents as structure.
type Scanner struct {
	Input string
	Start int
	Pos   int

	// BackslashEscapes treats '\' inside string literals as an escape
	// character, as Snowflake and MySQL do.
	BackslashEscapes bool
	// SlashComments treats // as the start of a line comment, as Snowflake
	// does.
	SlashComments bool
}

func (s *Scanner) peek(offset int) rune {
	if s.Pos+offset >= len(s.Input) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s.Input[s.Pos+offset:])
	return r
}

// MatchIdentifier returns the length of the next token, assuming it is an
// identifier.
//
// Grammar:
//
//	identifier      = (ALPHA / "_") *(ALPHA / DIGIT / "_" / "$")
func (s *Scanner) MatchIdentifier() int {
	i := s.Pos
	r, width := utf8.DecodeRuneInString(s.Input[i:])
	if !unicode.IsLetter(r) && r != '_' {
		return 0
	}

	size := 0
	for unicode.IsDigit(r) || unicode.IsLetter(r) || r == '_' || r == '$' {
		size += width
		i += width
		r, width = utf8.DecodeRuneInString(s.Input[i:])
	}

	return size
}

// MatchQuoted returns the length of the next token, assuming it starts with
// the quote rune q. A doubled quote rune is an escaped quote. Returns 0 if the
// quote is never closed.
//
// Grammar:
//
//	quoted          = q *(CHAR / q q) q
func (s *Scanner) MatchQuoted(q rune, backslash bool) int {
	i := s.Pos + utf8.RuneLen(q)

	for i < len(s.Input) {
		r, width := utf8.DecodeRuneInString(s.Input[i:])
		switch {
		case backslash && r == '\\':
			i += width
			if i < len(s.Input) {
				_, next := utf8.DecodeRuneInString(s.Input[i:])
				i += next
			}
			continue
		case r == q:
			i += width
			if next, w := utf8.DecodeRuneInString(s.Input[i:]); i < len(s.Input) && next == q {
				i += w
				continue
			}
			return i - s.Pos
		}
		i += width
	}

	return 0
}

// MatchDollarString returns the length of a $$ ... $$ string, or 0.
func (s *Scanner) MatchDollarString() int {
	if !strings.HasPrefix(s.Input[s.Pos:], "$$") {
		return 0
	}

	end := strings.Index(s.Input[s.Pos+2:], "$$")
	if end < 0 {
		return 0
	}

	return end + 4
}

// MatchNumber returns the length of the next token, assuming it is a
// number
//
// Grammar:
//
//	number          = (1*DIGIT ["." *DIGIT] / "." 1*DIGIT) [("e" / "E") ["+" / "-"] 1*DIGIT]
func (s *Scanner) MatchNumber() int {
	i := s.Pos
	digits := 0

	for i < len(s.Input) && isDigit(s.Input[i]) {
		i++
		digits++
	}

	if i < len(s.Input) && s.Input[i] == '.' {
		i++
		for i < len(s.Input) && isDigit(s.Input[i]) {
			i++
			digits++
		}
	}

	if digits == 0 {
		return 0
	}

	if i < len(s.Input) && (s.Input[i] == 'e' || s.Input[i] == 'E') {
		j := i + 1
		if j < len(s.Input) && (s.Input[j] == '+' || s.Input[j] == '-') {
			j++
		}
		if j < len(s.Input) && isDigit(s.Input[j]) {
			for j < len(s.Input) && isDigit(s.Input[j]) {
				j++
			}
			i = j
		}
	}

	return i - s.Pos
}

// MatchPlaceholder returns the length of the next token, assuming it is a
// bind placeholder.
//
// Grammar:
//
//	placeholder     = "?" / "$" 1*DIGIT / ("$" / ":") identifier
func (s *Scanner) MatchPlaceholder() int {
	switch s.peek(0) {
	case '?':
		return 1
	case '$':
		i := s.Pos + 1
		for i < len(s.Input) && isDigit(s.Input[i]) {
			i++
		}
		if i > s.Pos+1 {
			return i - s.Pos
		}
		fallthrough
	case ':':
		if s.peek(1) == ':' {
			return 0
		}
		s.Pos++
		n := s.MatchIdentifier()
		s.Pos--
		if n == 0 {
			return 0
		}
		return n + 1
	}
	return 0
}

// MatchOperator returns the length of a run of operator characters.
func (s *Scanner) MatchOperator() int {
	i := s.Pos
	for i < len(s.Input) && strings.IndexByte(operatorChars, s.Input[i]) >= 0 {
		// Comment openers end an operator run
		rest := s.Input[i:]
		if strings.HasPrefix(rest, "--") || strings.HasPrefix(rest, "/*") || (s.SlashComments && strings.HasPrefix(rest, "//")) {
			break
		}
		i++
	}
	return i - s.Pos
}

// SkipComment returns the length of a comment starting at the current
// position, or 0 if there is none. An unterminated block comment runs to the
// end of input.
func (s *Scanner) SkipComment() int {
	rest := s.Input[s.Pos:]
	switch {
	case strings.HasPrefix(rest, "--"), s.SlashComments && strings.HasPrefix(rest, "//"):
		end := strings.IndexByte(rest, '\n')
		if end < 0 {
			return len(rest)
		}
		return end + 1
	case strings.HasPrefix(rest, "/*"):
		end := strings.Index(rest[2:], "*/")
		if end < 0 {
			return len(rest)
		}
		return end + 4
	}
	return 0
}

// Emit the next Token found on Scanner.Input
func (s *Scanner) Emit() parse.Token {
	var t parse.Token

	for {
		s.Start = s.Pos
		if s.Pos >= len(s.Input) {
			t.Type = TOK_EOF
			break
		}

		r, width := utf8.DecodeRuneInString(s.Input[s.Pos:])
		found := true
		skip := 0

		switch {
		case unicode.IsSpace(r):
			skip = width
			found = false
		case r == '-' || r == '/':
			if skip = s.SkipComment(); skip > 0 {
				found = false
				break
			}
			t.Type = TOK_OPERATOR
			skip = s.MatchOperator()
		case r == '(':
			t.Type = TOK_PAREN_L
			skip = width
		case r == ')':
			t.Type = TOK_PAREN_R
			skip = width
		case r == ',':
			t.Type = TOK_COMMA
			skip = width
		case r == ';':
			t.Type = TOK_SEMICOLON
			skip = width
		case r == '.':
			if skip = s.MatchNumber(); skip > 0 {
				t.Type = TOK_NUMBER
				break
			}
			t.Type = TOK_DOT
			skip = width
		case r == '\'':
			if skip = s.MatchQuoted(r, s.BackslashEscapes); skip > 0 {
				t.Type = TOK_STRING
				break
			}
			t.Type = TOK_INVALID
			skip = len(s.Input) - s.Pos
		case r == '"' || r == '`':
			if skip = s.MatchQuoted(r, false); skip > 0 {
				t.Type = TOK_QUOTED_IDENTIFIER
				break
			}
			t.Type = TOK_INVALID
			skip = len(s.Input) - s.Pos
		case r == '$':
			if skip = s.MatchDollarString(); skip > 0 {
				t.Type = TOK_STRING
				break
			}
			if skip = s.MatchPlaceholder(); skip > 0 {
				t.Type = TOK_PLACEHOLDER
				break
			}
			t.Type = TOK_INVALID
			skip = width
		case r == '?':
			t.Type = TOK_PLACEHOLDER
			skip = width
		case r == ':':
			if skip = s.MatchPlaceholder(); skip > 0 {
				t.Type = TOK_PLACEHOLDER
				break
			}
			t.Type = TOK_OPERATOR
			skip = s.MatchOperator()
		case unicode.IsDigit(r):
			t.Type = TOK_NUMBER
			skip = s.MatchNumber()
		case unicode.IsLetter(r) || r == '_':
			skip = s.MatchIdentifier()
			if IsKeyword(s.Input[s.Pos : s.Pos+skip]) {
				t.Type = TOK_KEYWORD
			} else {
				t.Type = TOK_IDENTIFIER
			}
		default:
			if skip = s.MatchOperator(); skip > 0 {
				t.Type = TOK_OPERATOR
				break
			}
			t.Type = TOK_INVALID
			skip = width
		}

		s.Pos = s.Start + skip
		if found {
			break
		}
	}

	t.Lexeme = s.Input[s.Start:s.Pos]
	t.Location = parse.Location{Start: s.Start, End: s.Pos}
	s.Start = s.Pos

	return t
}

// Tokens scans the remaining input and returns every token up to, but not
// including, TOK_EOF.
func (s *Scanner) Tokens() []parse.Token {
	var toks []parse.Token
	for {
		t := s.Emit()
		if t.Type == TOK_EOF {
			return toks
		}
		toks = append(toks, t)
	}
}

const operatorChars = "+-*/<>=!|&^%~:@#{}[]\\"

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
