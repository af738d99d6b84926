package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coredds/enigma-breaker/pkg/config"
	"github.com/coredds/enigma-breaker/pkg/enigma"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode text through an Enigma machine built from a configuration string",
	Long: `Encode builds a machine from a fully-specified (no wildcards) configuration
string and runs text through it. Enigma is self-reciprocal per keystroke, so
the same command with the same configuration decodes a previously encoded
ciphertext.`,
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().StringP("config", "c", "", "Configuration string, e.g. \"B III-II-I 1-1-1 A-A-Z HL-MO\" (required)")
	encodeCmd.Flags().StringP("text", "t", "", "Text to encode (required)")
	encodeCmd.MarkFlagRequired("config")
	encodeCmd.MarkFlagRequired("text")
}

func runEncode(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	configStr, _ := cmd.Flags().GetString("config")
	text, _ := cmd.Flags().GetString("text")

	cfg, err := config.Parse(configStr)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	machine, err := enigma.Build(cfg)
	if err != nil {
		return fmt.Errorf("building machine: %w", err)
	}

	out, err := machine.EncodeString(text)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	log.Debug().Str("config", cfg.String()).Int("chars", len(text)).Msg("encoded text")
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
