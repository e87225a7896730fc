package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/byteptr/steel/internal/strength"
	"github.com/byteptr/steel/pkg/steel"
)

// reportStrength prints a one-line advisory strength note for a passphrase
// just set on close. Steel never blocks on a weak passphrase —
// this is informational only, matching the design's "advisory, never
// blocks" contract.
func reportStrength(result strength.Result) {
	note("passphrase strength: %s", result.Score.String())
}

// printRecords renders a record list (from list or find) as an aligned
// table, omitting the passphrase column — a listing never shows secrets
// on its own; show-field reveals one field of one record at a time.
func printRecords(records []steel.Record) {
	if len(records) == 0 {
		note("no records")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tUSER\tURL")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.Title, r.User, r.URL)
	}
	w.Flush()
}

// printStatus renders the tracking registry's entries, flagging stale
// ones the way list-status is specified to.
func printStatus(entries []steel.StatusEntry) {
	if len(entries) == 0 {
		note("no tracked databases")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tSTATUS")
	for _, e := range entries {
		status := "ok"
		if e.Stale {
			status = "stale (removed from registry)"
		}
		fmt.Fprintf(w, "%s\t%s\n", e.Path, status)
	}
	w.Flush()
}
