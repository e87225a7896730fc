package cli

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "list-status",
	Short: "List every tracked database path and prune stale entries",
	Long: `List-status prints every database path this user has ever created or
opened, flagging ones whose file no longer exists on disk. Stale entries
— and a stale session lock, if the locked path itself is gone — are
pruned as a side effect of running this command.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

var removeDatabaseCmd = &cobra.Command{
	Use:   "remove-database <path>",
	Short: "Shred a database file and stop tracking it",
	Long: `Remove-database overwrites the file at path with zeros before removing
it, then drops it from the tracking registry. Refuses to run against the
database the current session has open; close it first.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemoveDatabase,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(removeDatabaseCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := newSteel()
	if err != nil {
		return fail(err)
	}

	entries, err := s.ListStatus()
	if err != nil {
		return fail(err)
	}

	printStatus(entries)
	return nil
}

func runRemoveDatabase(cmd *cobra.Command, args []string) error {
	s, err := newSteel()
	if err != nil {
		return fail(err)
	}

	if err := s.RemoveDatabase(args[0]); err != nil {
		return fail(err)
	}

	note("shredded %s", args[0])
	return nil
}
