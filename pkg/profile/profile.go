/*
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package profile

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/dburkart/rewind/pkg/connector"
	"github.com/dburkart/rewind/pkg/timetravel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const DefaultEnv = "dev"

var ErrNoConnection = errors.New("no connection configured")

// Profile is the connection settings for one environment.
//
//	[connection.prod]
//	dsn = "snowflake://..."
//	dialect = "snowflake"
//	timezone = "America/New_York"
type Profile struct {
	Env      string
	DSN      string
	Dialect  string
	Timezone string

	// Environments lists every [connection.<env>] block in the config
	Environments []string
}

// Load reads the profile for the environment named by rewind.env. Flags
// (rewind.dsn, rewind.dialect, rewind.timezone) override the profile block.
func Load(v *viper.Viper) Profile {
	env := v.GetString("rewind.env")
	if env == "" {
		env = DefaultEnv
	}

	p := Profile{
		Env:          env,
		DSN:          v.GetString(key(env, "dsn")),
		Dialect:      v.GetString(key(env, "dialect")),
		Timezone:     v.GetString(key(env, "timezone")),
		Environments: environments(v.GetStringMap("connection")),
	}

	if s := v.GetString("rewind.dsn"); s != "" {
		p.DSN = s
	}
	if s := v.GetString("rewind.dialect"); s != "" {
		p.Dialect = s
	}
	if s := v.GetString("rewind.timezone"); s != "" {
		p.Timezone = s
	}

	return p
}

// environments lists the [connection.<env>] blocks of the config.
func environments(blocks map[string]interface{}) []string {
	names := []string{}
	for k, v := range blocks {
		if t := reflect.ValueOf(v); t.Kind() == reflect.Map {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

func key(env, field string) string {
	return fmt.Sprintf("connection.%s.%s", env, field)
}

// ConnectionString parses the profile's DSN.
func (p Profile) ConnectionString() (connector.ConnectionString, error) {
	if p.DSN == "" {
		known := "none"
		if len(p.Environments) > 0 {
			known = strings.Join(p.Environments, ", ")
		}
		return connector.ConnectionString{}, errors.Wrapf(ErrNoConnection, "environment %q (configured: %s)", p.Env, known)
	}
	return connector.ParseConnectionString(p.DSN)
}

// Builder returns a clause builder for the profile. An explicit dialect wins;
// otherwise the dialect implied by the DSN is used, then the default.
func (p Profile) Builder() (*timetravel.Builder, error) {
	name := p.Dialect
	if name == "" && p.DSN != "" {
		if cs, err := connector.ParseConnectionString(p.DSN); err == nil {
			name = cs.Dialect
		}
	}

	d := timetravel.DefaultDialect
	if name != "" {
		var err error
		d, err = timetravel.LookupDialect(name)
		if err != nil {
			return nil, err
		}
	}

	b := timetravel.NewBuilder(d)
	if p.Timezone != "" {
		loc, err := time.LoadLocation(p.Timezone)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid timezone %q", p.Timezone)
		}
		b.Location = loc
	}
	return b, nil
}

// Connect opens the profile's database.
func (p Profile) Connect(ctx context.Context, log zerolog.Logger) (*connector.DB, error) {
	cs, err := p.ConnectionString()
	if err != nil {
		return nil, err
	}
	log.Debug().Str("env", p.Env).Stringer("connection", cs).Msg("opening connection")
	return connector.Open(ctx, cs, connector.WithLogger(log))
}
