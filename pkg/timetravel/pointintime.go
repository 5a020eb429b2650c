/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timetravel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Kind int

const (
	// KindOffset scopes a query to "now minus N days".
	KindOffset Kind = iota
	// KindTimestamp scopes a query to an absolute instant.
	KindTimestamp
)

// A PointInTime is either a relative day offset or an absolute timestamp.
// The zero value is DaysAgo(0), i.e. now.
type PointInTime struct {
	kind Kind
	days int
	raw  string
	at   time.Time
}

// DaysAgo returns a point n days before now.
func DaysAgo(n int) PointInTime {
	return PointInTime{kind: KindOffset, days: n}
}

// Now is DaysAgo(0).
func Now() PointInTime {
	return DaysAgo(0)
}

// Timestamp returns an absolute point given as text. The text is parsed when
// the point is used, so an unparseable value surfaces as
// ErrInvalidPointInTime from the builder.
func Timestamp(s string) PointInTime {
	return PointInTime{kind: KindTimestamp, raw: s}
}

// At returns an absolute point at t.
func At(t time.Time) PointInTime {
	return PointInTime{kind: KindTimestamp, at: t}
}

func (p PointInTime) Kind() Kind {
	return p.kind
}

// Days is the offset of a KindOffset point.
func (p PointInTime) Days() int {
	return p.days
}

// IsNow reports whether p is a zero day offset.
func (p PointInTime) IsNow() bool {
	return p.kind == KindOffset && p.days == 0
}

// Validate checks the point without resolving it.
func (p PointInTime) Validate(loc *time.Location) error {
	_, err := p.Resolve(loc)
	return err
}

// Resolve returns the absolute instant of a KindTimestamp point, parsing its
// text in loc if needed. KindOffset points resolve to the zero time.
func (p PointInTime) Resolve(loc *time.Location) (time.Time, error) {
	switch p.kind {
	case KindOffset:
		if p.days < 0 {
			return time.Time{}, errors.Wrapf(ErrInvalidPointInTime, "day offset %d is negative", p.days)
		}
		return time.Time{}, nil
	case KindTimestamp:
		if !p.at.IsZero() {
			return p.at, nil
		}
		if strings.TrimSpace(p.raw) == "" {
			return time.Time{}, errors.Wrap(ErrInvalidPointInTime, "timestamp is empty")
		}
		tm, err := ParseVagueDateTime(p.raw, loc)
		if err != nil {
			return time.Time{}, errors.Wrap(ErrInvalidPointInTime, err.Error())
		}
		return tm, nil
	}
	return time.Time{}, errors.Wrapf(ErrInvalidPointInTime, "unknown kind %d", p.kind)
}

func (p PointInTime) String() string {
	switch p.kind {
	case KindOffset:
		if p.days == 0 {
			return "now"
		}
		if p.days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", p.days)
	case KindTimestamp:
		if !p.at.IsZero() {
			return p.at.Format(time.RFC3339)
		}
		return p.raw
	}
	return "unknown"
}

// ParsePointInTime reads the forms accepted on the command line:
//
//	now
//	7 / 7d / 7 days ago
//	<timestamp>
//
// Timestamps are kept as text and validated when used.
func ParsePointInTime(s string) (PointInTime, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	if lower == "" {
		return PointInTime{}, errors.Wrap(ErrInvalidPointInTime, "empty point in time")
	}
	if lower == "now" {
		return Now(), nil
	}

	digits := lower
	for _, suffix := range []string{" days ago", " day ago", "days", "day", "d"} {
		if strings.HasSuffix(digits, suffix) {
			digits = strings.TrimSpace(strings.TrimSuffix(digits, suffix))
			break
		}
	}

	if n, err := strconv.Atoi(digits); err == nil {
		p := DaysAgo(n)
		if err := p.Validate(nil); err != nil {
			return PointInTime{}, err
		}
		return p, nil
	}

	p := Timestamp(s)
	if err := p.Validate(nil); err != nil {
		return PointInTime{}, err
	}
	return p, nil
}
