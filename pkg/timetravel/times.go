/*
 * Copyright (c) 2022-2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timetravel

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var numberFormats = [...]string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999 -07:00",
	"2006-01-02 15:04:05.999999999 -0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"02 Jan 06 15:04 MST",
	"02 Jan 06 15:04 -0700",
}

var letterFormats = [...]string{
	"Jan 02, 2006",
	"Jan 02, 2006 15:04:05",
	time.RFC850,
	time.UnixDate,
	time.RFC1123,
	time.RFC1123Z,
	time.ANSIC,
}

// ParseVagueDateTime parses some against the known timestamp layouts. Layouts
// that carry no zone are interpreted in loc.
func ParseVagueDateTime(some string, loc *time.Location) (time.Time, error) {
	some = strings.TrimSpace(some)
	if loc == nil {
		loc = time.UTC
	}

	first, _ := utf8.DecodeRuneInString(some)
	formats := letterFormats[:]
	if unicode.IsDigit(first) {
		formats = numberFormats[:]
	}

	for _, theFmt := range formats {
		tm, err := time.ParseInLocation(theFmt, some, loc)
		if err == nil {
			return tm, nil
		}
	}

	return time.Time{}, fmt.Errorf("specified time '%s' did not match a known timestamp", some)
}
