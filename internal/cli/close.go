package cli

import (
	"github.com/spf13/cobra"
)

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Re-encrypt the open database and end the session",
	Long: `Close asks for a passphrase (with confirmation), re-encrypts the
currently open database under it, and clears the session lock.

This is also how a catalogue gets its passphrase for the very first
time: after "init", "open" it (no passphrase is checked while it is
still plaintext), add records, then close it.`,
	Args: cobra.NoArgs,
	RunE: runClose,
}

func init() {
	rootCmd.AddCommand(closeCmd)
}

func runClose(cmd *cobra.Command, args []string) error {
	passphrase, err := ReadPasswordInteractive(true)
	if err != nil {
		return fail(err)
	}

	s, err := newSteel()
	if err != nil {
		return fail(err)
	}

	result, err := s.Close(passphrase)
	if err != nil {
		return fail(err)
	}

	reportStrength(result)
	note("database closed")
	return nil
}
