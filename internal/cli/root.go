// Package cli provides the command-line interface for enigma-breaker.
//
// Copyright (c) 2025 The enigma-breaker Authors
// Licensed under the MIT License
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/coredds/enigma-breaker/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "enigma-breaker",
	Short: "Known-plaintext brute-force cryptanalysis of the Enigma cipher",
	Long: `enigma-breaker encodes and decodes text with an exact Enigma I/M3/M4
simulation, and brute-forces a partially specified machine configuration
against a ciphertext and a known plaintext fragment (crib).

Examples:
  enigma-breaker encode --config "B III-II-I 1-1-1 A-A-Z HL-MO-AJ-CX-BZ-SR-NI-YW-DG-PK" --text "HELLOWORLD"
  enigma-breaker search --template "? Beta-Gamma-V 4-2-14 M-J-M KI-XN-FL" --ciphertext "DMEX..." --crib "SECRETS"
  enigma-breaker search serve --template "..." --ciphertext "..." --crib "..." --secret s3cret
  enigma-breaker search join --addr master:9500 --secret s3cret
  enigma-breaker reflector-perm --reflector B`,
}

// Execute runs the root command and handles errors.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug-level logging")
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(reflectorPermCmd)
}

func newLogger(cmd *cobra.Command) zerolog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logging.New(cmd.ErrOrStderr(), zerolog.InfoLevel, verbose)
}
