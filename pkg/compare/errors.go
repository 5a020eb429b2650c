/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package compare

import (
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrConnection     = errors.New("connection error")
	ErrQueryExecution = errors.New("query execution error")
)

// ConnectionError means the executor could not be used at all.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return ErrConnection.Error()
	}
	return fmt.Sprintf("%s: %v", ErrConnection, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

// ExecutionError wraps a database error raised while running one of the
// scoped queries.
type ExecutionError struct {
	Scope string
	Query string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %s query: %v", ErrQueryExecution, e.Scope, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

func (e *ExecutionError) Is(target error) bool { return target == ErrQueryExecution }

// isConnectionFailure reports whether err means the connection itself is
// gone rather than the query being rejected.
func isConnectionFailure(err error) bool {
	return errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone)
}

var errNoExecutor = errors.New("no executor configured")
