package cli

import (
	"github.com/spf13/cobra"
)

// decodeCmd is an alias of encode: Enigma is self-reciprocal per
// keystroke, so decoding and encoding are the same operation given the
// same starting configuration.
var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode text through an Enigma machine (alias of encode)",
	Long: `decode is identical to encode: given the same starting configuration,
running a ciphertext back through the machine recovers the plaintext.`,
	RunE: runEncode,
}

func init() {
	decodeCmd.Flags().StringP("config", "c", "", "Configuration string (required)")
	decodeCmd.Flags().StringP("text", "t", "", "Text to decode (required)")
	decodeCmd.MarkFlagRequired("config")
	decodeCmd.MarkFlagRequired("text")
}
