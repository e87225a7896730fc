package cli

import (
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Create a new, empty, unencrypted catalogue",
	Long: `Init creates a brand-new catalogue file at path and starts tracking it.

It does not encrypt anything by itself — the catalogue sits in plaintext
until the first "close" seals it under a passphrase.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := args[0]

	s, err := newSteel()
	if err != nil {
		return fail(err)
	}

	if err := s.Init(path); err != nil {
		return fail(err)
	}

	note("initialized %s", path)
	note(`run "steel open" on it, add records, then "steel close" to encrypt it`)
	return nil
}
