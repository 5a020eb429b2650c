/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timetravel

import (
	"strings"
	"time"

	"github.com/dburkart/rewind/pkg/common/parse"
	"github.com/dburkart/rewind/pkg/sql/scanner"
)

// A Builder scopes read-only queries to a point in time by inserting the
// dialect's time travel clause after every relation the query reads from.
type Builder struct {
	Dialect Dialect

	// Location is used for zone-less timestamps and for rendering absolute
	// points. Defaults to UTC.
	Location *time.Location
}

func NewBuilder(d Dialect) *Builder {
	if d == nil {
		d = DefaultDialect
	}
	return &Builder{Dialect: d, Location: time.UTC}
}

// BuildScopedQuery scopes baseQuery to when using the default dialect.
func BuildScopedQuery(baseQuery string, when PointInTime) (string, error) {
	return NewBuilder(DefaultDialect).BuildScopedQuery(baseQuery, when)
}

func (b *Builder) location() *time.Location {
	if b.Location == nil {
		return time.UTC
	}
	return b.Location
}

func (b *Builder) dialect() Dialect {
	if b.Dialect == nil {
		return DefaultDialect
	}
	return b.Dialect
}

func (b *Builder) DialectName() string {
	return b.dialect().Name()
}

// Clause renders the time travel clause for when.
func (b *Builder) Clause(when PointInTime) (string, error) {
	tm, err := when.Resolve(b.location())
	if err != nil {
		return "", err
	}

	if when.Kind() == KindOffset {
		return b.dialect().OffsetClause(when.Days()), nil
	}
	return b.dialect().TimestampClause(tm.In(b.location())), nil
}

// BuildScopedQuery returns baseQuery with the time travel clause for when
// inserted after each source relation. Nothing else in the query changes.
func (b *Builder) BuildScopedQuery(baseQuery string, when PointInTime) (string, error) {
	clause, err := b.Clause(when)
	if err != nil {
		return "", err
	}

	points, err := b.InsertionPoints(baseQuery)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(baseQuery) + len(points)*(len(clause)+1))

	last := 0
	for _, p := range points {
		sb.WriteString(baseQuery[last:p])
		sb.WriteByte(' ')
		sb.WriteString(clause)
		last = p
	}
	sb.WriteString(baseQuery[last:])

	return sb.String(), nil
}

type frame struct {
	query  bool
	inFrom bool
	// join marks a parenthesized join tree such as FROM (a JOIN b ON ...)
	join bool
	open parse.Token
}

// Keywords that close a FROM list in the frame they appear in.
var fromListEnders = map[string]struct{}{
	"WHERE":     {},
	"GROUP":     {},
	"HAVING":    {},
	"QUALIFY":   {},
	"WINDOW":    {},
	"ORDER":     {},
	"LIMIT":     {},
	"OFFSET":    {},
	"FETCH":     {},
	"UNION":     {},
	"INTERSECT": {},
	"EXCEPT":    {},
	"MINUS":     {},
	"SELECT":    {},
}

// InsertionPoints returns the byte offsets, in ascending order, directly after
// each relation name in query that should carry a time travel clause.
func (b *Builder) InsertionPoints(query string) ([]int, error) {
	s := scanner.Scanner{
		Input:            query,
		BackslashEscapes: b.dialect().BackslashEscapes(),
		SlashComments:    b.dialect().SlashComments(),
	}
	toks, err := statementTokens(s.Tokens(), query)
	if err != nil {
		return nil, err
	}

	ctes := collectCTEs(toks)
	frames := []frame{{query: true}}
	var points []int

	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		top := &frames[len(frames)-1]

		switch tok.Type {
		case scanner.TOK_PAREN_L:
			f := frame{
				query: i+1 < len(toks) && isKeyword(toks[i+1], "SELECT", "WITH"),
				open:  tok,
			}
			if !f.query && startsJoinTree(toks, i, *top) {
				f = frame{query: true, inFrom: true, join: true, open: tok}
				point, err := relation(toks, i, ctes)
				if err != nil {
					return nil, err
				}
				if point >= 0 {
					points = append(points, point)
				}
			}
			frames = append(frames, f)
		case scanner.TOK_PAREN_R:
			if len(frames) == 1 {
				return nil, newMalformed(tok.Location, "unbalanced closing parenthesis")
			}
			frames = frames[:len(frames)-1]
		case scanner.TOK_COMMA:
			if !top.query || !top.inFrom {
				continue
			}
			point, err := relation(toks, i, ctes)
			if err != nil {
				return nil, err
			}
			if point >= 0 {
				points = append(points, point)
			}
		case scanner.TOK_KEYWORD:
			if !top.query {
				continue
			}
			word := strings.ToUpper(tok.Lexeme)
			if word == "FROM" || word == "JOIN" {
				top.inFrom = true
				point, err := relation(toks, i, ctes)
				if err != nil {
					return nil, err
				}
				if point >= 0 {
					points = append(points, point)
				}
				continue
			}
			if _, ok := fromListEnders[word]; ok {
				top.inFrom = false
			}
		}
	}

	if len(frames) > 1 {
		return nil, newMalformed(frames[len(frames)-1].open.Location, "unclosed parenthesis")
	}

	if len(points) == 0 {
		return nil, newMalformed(parse.Location{Start: 0, End: len(strings.TrimRight(query, " \t\r\n;"))},
			"no source relation found")
	}

	return points, nil
}

// startsJoinTree reports whether the parenthesis at toks[i] opens a join tree
// in place of a relation, rather than a derived table, VALUES list or
// expression.
func startsJoinTree(toks []parse.Token, i int, top frame) bool {
	if i == 0 || i+1 >= len(toks) || !top.query {
		return false
	}
	if next := toks[i+1]; !isName(next) && next.Type != scanner.TOK_PAREN_L {
		return false
	}

	prev := toks[i-1]
	switch {
	case isKeyword(prev, "FROM", "JOIN"):
		return true
	case prev.Type == scanner.TOK_COMMA:
		return top.inFrom
	case prev.Type == scanner.TOK_PAREN_L:
		return top.join
	}
	return false
}

// statementTokens checks that toks form a single read-only statement and
// returns them without any trailing semicolons.
func statementTokens(toks []parse.Token, query string) ([]parse.Token, error) {
	if len(toks) == 0 {
		return nil, newMalformed(parse.Location{Start: 0, End: len(query)}, "query is empty")
	}

	for _, tok := range toks {
		if tok.Type == scanner.TOK_INVALID {
			msg := "unexpected character"
			if strings.ContainsAny(tok.Lexeme[:1], `'"`+"`") {
				msg = "unterminated literal"
			}
			return nil, newMalformed(tok.Location, msg)
		}
	}

	end := len(toks)
	for end > 0 && toks[end-1].Type == scanner.TOK_SEMICOLON {
		end--
	}
	toks = toks[:end]

	for _, tok := range toks {
		if tok.Type == scanner.TOK_SEMICOLON {
			return nil, newMalformed(tok.Location, "multiple statements are not supported")
		}
	}

	i := skipOpenParens(toks, 0)
	if i < len(toks) && isKeyword(toks[i], "WITH") {
		i = skipOpenParens(toks, afterCTEs(toks, i))
	}
	if i >= len(toks) {
		return nil, newMalformed(toks[len(toks)-1].Location, "not a read-only SELECT statement")
	}
	if !isKeyword(toks[i], "SELECT") {
		return nil, newMalformed(toks[i].Location, "not a read-only SELECT statement")
	}

	return toks, nil
}

func skipOpenParens(toks []parse.Token, i int) int {
	for i < len(toks) && toks[i].Type == scanner.TOK_PAREN_L {
		i++
	}
	return i
}

// skipGroup returns the index just past the parenthesis matching toks[i].
func skipGroup(toks []parse.Token, i int) int {
	depth := 0
	for ; i < len(toks); i++ {
		switch toks[i].Type {
		case scanner.TOK_PAREN_L:
			depth++
		case scanner.TOK_PAREN_R:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return i
}

// afterCTEs returns the index of the first token following the WITH clause
// that starts at toks[i]:
//
//	WITH [RECURSIVE] name [(columns)] AS [NOT] [MATERIALIZED] (body) [, ...]
func afterCTEs(toks []parse.Token, i int) int {
	i++
	if i < len(toks) && isKeyword(toks[i], "RECURSIVE") {
		i++
	}

	for i < len(toks) && isName(toks[i]) {
		i++
		if i < len(toks) && toks[i].Type == scanner.TOK_PAREN_L {
			i = skipGroup(toks, i)
		}
		if i >= len(toks) || !isKeyword(toks[i], "AS") {
			return i
		}
		i++
		for i < len(toks) && isName(toks[i]) {
			i++
		}
		if i >= len(toks) || toks[i].Type != scanner.TOK_PAREN_L {
			return i
		}
		i = skipGroup(toks, i)
		if i >= len(toks) || toks[i].Type != scanner.TOK_COMMA {
			return i
		}
		i++
	}
	return i
}

// relation inspects the relation following toks[at] (FROM, JOIN or a comma)
// and returns the offset just past its name, or -1 when the thing being read
// from is not a plain relation.
func relation(toks []parse.Token, at int, ctes map[string]struct{}) (int, error) {
	i := at + 1
	if i >= len(toks) {
		return -1, newMalformed(toks[at].Location, "expected a relation after "+strings.ToUpper(toks[at].Lexeme))
	}

	switch first := toks[i]; {
	case first.Type == scanner.TOK_PAREN_L:
		return -1, nil
	case isKeyword(first, "LATERAL", "TABLE", "UNNEST", "VALUES"):
		return -1, nil
	case !isName(first):
		return -1, newMalformed(first.Location, "expected a relation after "+strings.ToUpper(toks[at].Lexeme))
	}

	parts := 1
	end := toks[i].Location.End
	// Keywords are ordinary names once qualified, as in analytics.changes
	for i+2 < len(toks) && toks[i+1].Type == scanner.TOK_DOT && (isName(toks[i+2]) || toks[i+2].Type == scanner.TOK_KEYWORD) {
		i += 2
		parts++
		end = toks[i].Location.End
	}

	if i+1 < len(toks) {
		next := toks[i+1]
		switch {
		case next.Type == scanner.TOK_PAREN_L:
			// Table function
			return -1, nil
		case isKeyword(next, "AT", "BEFORE", "CHANGES"):
			return -1, newMalformed(next.Location, "relation is already time-scoped")
		case isKeyword(next, "FOR") && i+2 < len(toks) && isKeyword(toks[i+2], "SYSTEM_TIME"):
			return -1, newMalformed(next.Location, "relation is already time-scoped")
		}
	}

	if parts == 1 {
		if _, ok := ctes[normalizeName(toks[at+1])]; ok {
			return -1, nil
		}
	}

	return end, nil
}

// collectCTEs returns the normalized names of every common table expression
// declared anywhere in toks.
func collectCTEs(toks []parse.Token) map[string]struct{} {
	ctes := make(map[string]struct{})

	for i, tok := range toks {
		if !isKeyword(tok, "WITH") {
			continue
		}

		depth := 0
		expectName := true
	scan:
		for _, t := range toks[i+1:] {
			switch {
			case t.Type == scanner.TOK_PAREN_L:
				depth++
			case t.Type == scanner.TOK_PAREN_R:
				depth--
				if depth < 0 {
					break scan
				}
			case depth > 0:
			case isKeyword(t, "SELECT"):
				break scan
			case t.Type == scanner.TOK_COMMA:
				expectName = true
			case expectName && isName(t):
				ctes[normalizeName(t)] = struct{}{}
				expectName = false
			}
		}
	}

	return ctes
}

func isName(t parse.Token) bool {
	return t.Type == scanner.TOK_IDENTIFIER || t.Type == scanner.TOK_QUOTED_IDENTIFIER
}

func isKeyword(t parse.Token, words ...string) bool {
	if t.Type != scanner.TOK_KEYWORD {
		return false
	}
	for _, w := range words {
		if strings.EqualFold(t.Lexeme, w) {
			return true
		}
	}
	return false
}

// normalizeName folds unquoted identifiers to upper case and strips quotes
// from quoted ones.
func normalizeName(t parse.Token) string {
	if t.Type == scanner.TOK_QUOTED_IDENTIFIER {
		q := t.Lexeme[:1]
		inner := t.Lexeme[1 : len(t.Lexeme)-1]
		return strings.ReplaceAll(inner, q+q, q)
	}
	return strings.ToUpper(t.Lexeme)
}
