/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package rewind

// database/sql drivers for the connection string schemes rewind knows
import (
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/marcboeker/go-duckdb"
	_ "github.com/snowflakedb/gosnowflake"
	_ "modernc.org/sqlite"
)
