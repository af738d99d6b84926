package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coredds/enigma-breaker/internal/reflector"
	"github.com/coredds/enigma-breaker/pkg/reflectorperm"
)

var reflectorPermCmd = &cobra.Command{
	Use:   "reflector-perm",
	Short: "Enumerate every reflector wiring reachable by 2 wire swaps",
	Long: `reflector-perm takes a reflector kind or an explicit 26-letter wiring and
prints every distinct involution reachable by exactly 2 wire swaps,
8580 for a 13-pair reflector.`,
	RunE: runReflectorPerm,
}

func init() {
	reflectorPermCmd.Flags().StringP("reflector", "k", "", "Reflector kind (A, B, C) to start from")
	reflectorPermCmd.Flags().StringP("wiring", "w", "", "Explicit 26-letter wiring to start from, instead of --reflector")
	reflectorPermCmd.Flags().IntP("limit", "l", 0, "Print at most this many wirings (0 = all)")
}

func runReflectorPerm(cmd *cobra.Command, args []string) error {
	kindStr, _ := cmd.Flags().GetString("reflector")
	wiring, _ := cmd.Flags().GetString("wiring")
	limit, _ := cmd.Flags().GetInt("limit")

	if wiring == "" {
		if kindStr == "" {
			return fmt.Errorf("one of --reflector or --wiring is required")
		}
		nominal, err := reflector.NominalWiring(reflector.Kind(kindStr))
		if err != nil {
			return fmt.Errorf("unknown reflector kind %q: %w", kindStr, err)
		}
		wiring = nominal
	}

	wirings, err := reflectorperm.GenerateN2(wiring)
	if err != nil {
		return fmt.Errorf("generating permutations: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d distinct wirings\n", len(wirings))
	for i, w := range wirings {
		if limit > 0 && i >= limit {
			break
		}
		fmt.Fprintln(out, w)
	}
	return nil
}
