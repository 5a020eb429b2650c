/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package main

import (
	"github.com/dburkart/rewind/cmd/rewind"
)

func main() {
	rewind.Execute()
}
