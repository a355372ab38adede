// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point of the restadmin CLI.
package main

import (
	"restadmin/cli/cmd"
)

func main() {
	cmd.Execute()
}
