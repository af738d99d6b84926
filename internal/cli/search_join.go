package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/coredds/enigma-breaker/pkg/search/distributed"
)

var searchJoinCmd = &cobra.Command{
	Use:   "join",
	Short: "Join a running distributed search as a client",
	Long: `join connects to a search master, authenticates with the shared secret,
spawns a per-core worker set, and pulls batches until the job queue is
drained, then reports a single FINAL.`,
	RunE: runSearchJoin,
}

func init() {
	searchJoinCmd.Flags().String("addr", "", "Master address, host:port (required)")
	searchJoinCmd.Flags().String("secret", "", "Pre-shared authentication secret (required)")
	searchJoinCmd.Flags().Int("workers", 0, "Worker count (default: all cores)")
	searchJoinCmd.Flags().Int("retries", 10, "Connection retry attempts before giving up")
	searchJoinCmd.MarkFlagRequired("addr")
	searchJoinCmd.MarkFlagRequired("secret")
}

func runSearchJoin(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	addr, _ := cmd.Flags().GetString("addr")
	secret, _ := cmd.Flags().GetString("secret")
	workers, _ := cmd.Flags().GetInt("workers")
	retries, _ := cmd.Flags().GetInt("retries")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	client, err := distributed.Connect(addr, secret, retries, log)
	if err != nil {
		return fmt.Errorf("connecting to master: %w", err)
	}
	defer client.Close()

	log.Info().Str("addr", addr).Int("workers", workers).Msg("joined search")
	matches, err := client.Run(workers)
	if err != nil {
		return fmt.Errorf("running search: %w", err)
	}

	printMatches(cmd, matches)
	return nil
}
