package cli

import (
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup <src> <dst>",
	Short: "Copy an encrypted container to a new path",
	Long: `Backup copies the encrypted container at src to dst. It refuses to
run against a currently-decrypted src and refuses to overwrite an
existing dst.`,
	Args: cobra.ExactArgs(2),
	RunE: runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	s, err := newSteel()
	if err != nil {
		return fail(err)
	}

	if err := s.Backup(args[0], args[1]); err != nil {
		return fail(err)
	}

	note("backed up %s to %s", args[0], args[1])
	return nil
}
