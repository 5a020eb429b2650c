/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timetravel

import (
	"github.com/dburkart/rewind/pkg/common/parse"
	"github.com/pkg/errors"
)

var (
	ErrInvalidPointInTime = errors.New("invalid point in time")
	ErrMalformedQuery     = errors.New("malformed query")
)

// MalformedQueryError reports where in the base query the builder gave up.
type MalformedQueryError struct {
	parse.SyntaxError
}

func newMalformed(loc parse.Location, msg string) *MalformedQueryError {
	return &MalformedQueryError{parse.SyntaxError{Location: loc, Message: msg}}
}

func (e *MalformedQueryError) Error() string {
	return ErrMalformedQuery.Error() + ": " + e.SyntaxError.Error()
}

func (e *MalformedQueryError) Is(target error) bool {
	return target == ErrMalformedQuery
}
