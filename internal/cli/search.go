package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coredds/enigma-breaker/internal/reflector"
	"github.com/coredds/enigma-breaker/pkg/config"
	"github.com/coredds/enigma-breaker/pkg/expander"
	"github.com/coredds/enigma-breaker/pkg/reflectorperm"
	"github.com/coredds/enigma-breaker/pkg/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Brute-force a wildcarded configuration template against a ciphertext and crib",
	Long: `search expands a partial configuration template, computes every valid crib
offset, and evaluates every (configuration, offset) trial, reporting the
ones whose crib window matches the ciphertext.

Use "search serve" and "search join" for the distributed master/client
execution shape instead of running locally.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("template", "T", "", "Configuration template, may contain ? wildcards and [a,b,c] lists (required)")
	searchCmd.Flags().StringP("ciphertext", "x", "", "Ciphertext to search (required)")
	searchCmd.Flags().StringP("crib", "r", "", "Known plaintext fragment (required)")
	searchCmd.Flags().StringP("mode", "m", "parallel", "Execution shape: sequential or parallel")
	searchCmd.Flags().IntP("workers", "w", 0, "Worker count for parallel mode (default: all cores)")
	searchCmd.Flags().IntP("batch-size", "b", search.DefaultBatchSize, "Trials per batch in parallel mode")
	searchCmd.Flags().Bool("tampered", false, "Search for a tampered reflector (2 wire swaps) instead of a listed reflector kind")
	searchCmd.MarkFlagRequired("template")
	searchCmd.MarkFlagRequired("ciphertext")
	searchCmd.MarkFlagRequired("crib")

	searchCmd.AddCommand(searchServeCmd)
	searchCmd.AddCommand(searchJoinCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	template, _ := cmd.Flags().GetString("template")
	ciphertext, _ := cmd.Flags().GetString("ciphertext")
	crib, _ := cmd.Flags().GetString("crib")
	mode, _ := cmd.Flags().GetString("mode")
	workers, _ := cmd.Flags().GetInt("workers")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	tampered, _ := cmd.Flags().GetBool("tampered")

	cfgs, err := expander.Expand(template)
	if err != nil {
		return fmt.Errorf("expanding template: %w", err)
	}
	log.Info().Int("configurations", len(cfgs)).Msg("template expanded")

	trials, err := buildTrials(ciphertext, crib, cfgs, tampered)
	if err != nil {
		return err
	}
	log.Info().Int("trials", len(trials)).Msg("trials built")

	var matches []search.Match
	switch mode {
	case "sequential":
		matches, err = search.Sequential(ciphertext, crib, trials, search.WithProgress(func(p search.Progress) {
			log.Info().Int("completed", p.Completed).Int("total", p.Total).Dur("eta", p.ETA).Msg("progress")
		}))
	case "parallel":
		opts := []search.ParallelOption{search.WithBatchSize(batchSize)}
		if workers > 0 {
			opts = append(opts, search.WithWorkers(workers))
		}
		matches, err = search.Parallel(ciphertext, crib, trials, opts...)
	default:
		return fmt.Errorf("unknown mode %q, want sequential or parallel", mode)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printMatches(cmd, matches)
	return nil
}

// buildTrials assembles trials for either the plain configuration search
// or the tampered-reflector variant, which crosses every candidate
// configuration with every 2-wire-swap reflector wiring reachable from
// its nominal reflector.
func buildTrials(ciphertext, crib string, cfgs []config.Configuration, tampered bool) ([]search.Trial, error) {
	if !tampered {
		return search.BuildTrials(ciphertext, crib, cfgs)
	}

	var trials []search.Trial
	for _, cfg := range cfgs {
		nominal, err := reflector.NominalWiring(cfg.Reflector)
		if err != nil {
			return nil, fmt.Errorf("tampered search: %w", err)
		}
		wirings, err := reflectorperm.GenerateN2(nominal)
		if err != nil {
			return nil, fmt.Errorf("tampered search: %w", err)
		}
		t, err := search.BuildTamperedTrials(ciphertext, crib, []config.Configuration{cfg}, wirings)
		if err != nil {
			return nil, err
		}
		trials = append(trials, t...)
	}
	return trials, nil
}

func printMatches(cmd *cobra.Command, matches []search.Match) {
	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintln(out, "no matches found")
		return
	}
	for _, m := range matches {
		if m.ReflectorWiring != "" {
			fmt.Fprintf(out, "%s (reflector wiring %s) @ offset %d: %s\n",
				m.Configuration.String(), m.ReflectorWiring, m.Offset, m.Plaintext)
		} else {
			fmt.Fprintf(out, "%s @ offset %d: %s\n", m.Configuration.String(), m.Offset, m.Plaintext)
		}
	}
}

