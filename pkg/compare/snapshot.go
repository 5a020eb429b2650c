/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package compare

import (
	"io"
	"time"

	"github.com/dburkart/rewind/pkg/table"
	"github.com/dburkart/rewind/pkg/timetravel"
	"github.com/google/uuid"
)

// A Snapshot is the result of one query as of one point in time.
type Snapshot struct {
	ID        uuid.UUID
	Data      table.ResultTable
	Query     string
	When      timetravel.PointInTime
	QueriedAt time.Time
	Elapsed   time.Duration
}

func (s Snapshot) RowCount() int {
	return s.Data.Len()
}

func (s Snapshot) WriteCSV(w io.Writer) error {
	return table.NewOutputWriter(w, "csv").Write(s.Data)
}

// A Comparison holds the current and historical snapshots of one query. Both
// snapshots carry the comparison's ID.
type Comparison struct {
	ID         uuid.UUID
	Current    Snapshot
	Historical Snapshot
}

// RowDelta is the historical row count subtracted from the current one.
func (c Comparison) RowDelta() int {
	return c.Current.RowCount() - c.Historical.RowCount()
}
