package cli

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/coredds/enigma-breaker/pkg/expander"
	"github.com/coredds/enigma-breaker/pkg/search/distributed"
)

var searchServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the distributed search master",
	Long: `serve expands the template into the candidate configuration set, enumerates
trials, and waits for authenticated clients to pull batches and report
matches, speed samples, and a terminal FINAL.
It exits once every client that ever authenticated has reported FINAL.`,
	RunE: runSearchServe,
}

func init() {
	searchServeCmd.Flags().StringP("template", "T", "", "Configuration template (required)")
	searchServeCmd.Flags().StringP("ciphertext", "x", "", "Ciphertext to search (required)")
	searchServeCmd.Flags().StringP("crib", "r", "", "Known plaintext fragment (required)")
	searchServeCmd.Flags().String("secret", "", "Pre-shared authentication secret (required)")
	searchServeCmd.Flags().String("addr", ":9500", "Address to listen on")
	searchServeCmd.Flags().Int("batch-size", 75, "Trials per batch")
	searchServeCmd.Flags().String("metrics-addr", "", "If set, serve Prometheus metrics on this address")
	searchServeCmd.MarkFlagRequired("template")
	searchServeCmd.MarkFlagRequired("ciphertext")
	searchServeCmd.MarkFlagRequired("crib")
	searchServeCmd.MarkFlagRequired("secret")
}

func runSearchServe(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	template, _ := cmd.Flags().GetString("template")
	ciphertext, _ := cmd.Flags().GetString("ciphertext")
	crib, _ := cmd.Flags().GetString("crib")
	secret, _ := cmd.Flags().GetString("secret")
	addr, _ := cmd.Flags().GetString("addr")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	cfgs, err := expander.Expand(template)
	if err != nil {
		return fmt.Errorf("expanding template: %w", err)
	}
	trials, err := buildTrials(ciphertext, crib, cfgs, false)
	if err != nil {
		return err
	}

	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Info().Str("addr", metricsAddr).Msg("serving prometheus metrics")
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	master := distributed.NewMaster(secret, ciphertext, crib, trials, batchSize, log)
	boundAddr, err := master.Listen(addr)
	if err != nil {
		return fmt.Errorf("starting master: %w", err)
	}
	log.Info().Str("addr", boundAddr).Int("batches", (len(trials)+batchSize-1)/batchSize).Msg("master listening")

	matches, err := master.Wait()
	if err != nil {
		return fmt.Errorf("waiting for clients: %w", err)
	}

	printMatches(cmd, matches)
	return nil
}
