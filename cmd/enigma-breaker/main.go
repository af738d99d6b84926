// Package main provides the enigma-breaker command-line interface.
//
// Copyright (c) 2025 The enigma-breaker Authors
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/coredds/enigma-breaker/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
