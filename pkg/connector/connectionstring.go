/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package connector

import (
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

var ErrUnknownScheme = errors.New("unrecognized scheme")

type ConnectionString struct {
	Scheme string
	// Driver is the database/sql driver name the DSN is meant for
	Driver string
	DSN    string
	// Dialect is the time travel dialect the database speaks, empty if it
	// has none
	Dialect string

	redacted string
}

// ParseConnectionString takes a connection string and turns it into the
// driver name and DSN database/sql needs to make a connection.
//
// Formats:
//
//	snowflake://<user>[:<password>]@<account>[/<db>[/<schema>]][?<params>]
//	duckdb://[<path>]
//	mysql://<user>[:<password>]@<host:port>/<db>[?<params>]
//	mariadb://<user>[:<password>]@<host:port>/<db>[?<params>]
//	sqlite://<path>
func ParseConnectionString(connStr string) (ConnectionString, error) {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return ConnectionString{}, errors.New("empty connection string")
	}

	scheme, rest, ok := strings.Cut(connStr, "://")
	if !ok {
		return ConnectionString{}, errors.Errorf("connection string %q has no scheme", connStr)
	}
	scheme = strings.ToLower(scheme)

	ret := ConnectionString{Scheme: scheme}

	switch scheme {
	case "snowflake":
		if rest == "" {
			return ConnectionString{}, errors.New("snowflake connection string needs an account")
		}
		ret.Driver = "snowflake"
		ret.DSN = rest
		ret.Dialect = "snowflake"
		ret.redacted = redact(connStr)
	case "duckdb", "ducklake":
		ret.Driver = "duckdb"
		ret.DSN = rest
		ret.Dialect = "duckdb"
		ret.redacted = connStr
	case "mysql", "mariadb":
		dsn, err := mysqlDSN(connStr)
		if err != nil {
			return ConnectionString{}, err
		}
		ret.Driver = "mysql"
		ret.DSN = dsn
		ret.Dialect = "mariadb"
		ret.redacted = redact(connStr)
	case "sqlite":
		if rest == "" {
			return ConnectionString{}, errors.New("sqlite connection string needs a path")
		}
		ret.Driver = "sqlite"
		ret.DSN = rest
		ret.redacted = connStr
	default:
		return ConnectionString{}, errors.Wrap(ErrUnknownScheme, scheme)
	}

	return ret, nil
}

// String returns the connection string with any password masked.
func (c ConnectionString) String() string {
	return c.redacted
}

func redact(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		return maskUser(connStr)
	}
	return u.Redacted()
}

// maskUser hides everything between the scheme and the host when the string is
// not a parseable URL.
func maskUser(connStr string) string {
	scheme, rest, _ := strings.Cut(connStr, "://")
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		rest = "xxxxx" + rest[i:]
	}
	return scheme + "://" + rest
}

// mysqlDSN converts a URL into the go-sql-driver/mysql DSN format
// user:password@tcp(host:port)/dbname?params.
func mysqlDSN(connStr string) (string, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return "", errors.Wrap(err, "invalid mysql connection string")
	}
	if u.Host == "" {
		return "", errors.New("mysql connection string needs a host")
	}

	db := strings.TrimPrefix(u.Path, "/")
	if strings.Contains(db, "/") {
		return "", errors.Errorf("invalid database %s", u.Path)
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	cfg.DBName = db
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	if q := u.Query(); len(q) > 0 {
		cfg.Params = make(map[string]string, len(q))
		for k := range q {
			cfg.Params[k] = q.Get(k)
		}
	}
	return cfg.FormatDSN(), nil
}
