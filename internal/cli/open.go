package cli

import (
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Decrypt a catalogue and start a session on it",
	Long: `Open decrypts the container at path under a passphrase read from the
terminal and marks it as the one session-wide open database. A catalogue
still in plaintext after "init" is marked open without decryption.

Only one database may be open at a time; open fails with AlreadyOpen if
another one already is.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	path := args[0]

	passphrase, err := ReadPasswordInteractive(false)
	if err != nil {
		return fail(err)
	}

	s, err := newSteel()
	if err != nil {
		return fail(err)
	}

	if err := s.Open(path, passphrase); err != nil {
		return fail(err)
	}

	note("%s is open", path)
	return nil
}
