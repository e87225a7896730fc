package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/byteptr/steel/pkg/steel"
)

var (
	recTitle      string
	recUser       string
	recPassphrase string
	recURL        string
	recNotes      string
	recGenerate   int
)

func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&recTitle, "title", "", "record title")
	cmd.Flags().StringVar(&recUser, "user", "", "record username")
	cmd.Flags().StringVar(&recPassphrase, "passphrase", "", "record passphrase")
	cmd.Flags().StringVar(&recURL, "url", "", "record URL")
	cmd.Flags().StringVar(&recNotes, "notes", "", "record notes")
	cmd.Flags().IntVar(&recGenerate, "generate", 0, "generate a passphrase of this length instead of --passphrase")
}

// resolvePassphrase returns recPassphrase, or a freshly generated one when
// --generate was given instead.
func resolvePassphrase() (string, error) {
	if recGenerate > 0 {
		return passgenGenerate(recGenerate)
	}
	return recPassphrase, nil
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new record to the open database",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addRecordFlags(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	passphrase, err := resolvePassphrase()
	if err != nil {
		return fail(err)
	}

	s, err := newSteel()
	if err != nil {
		return fail(err)
	}

	id, err := s.Add(steel.Record{
		Title:      recTitle,
		User:       recUser,
		Passphrase: passphrase,
		URL:        recURL,
		Notes:      recNotes,
	})
	if err != nil {
		return fail(err)
	}

	note("added record %d", id)
	return nil
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print one record (passphrase hidden; use show for that)",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return fail(err)
	}

	s, err := newSteel()
	if err != nil {
		return fail(err)
	}

	rec, err := s.Get(id)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("id:    %d\n", rec.ID)
	fmt.Printf("title: %s\n", rec.Title)
	fmt.Printf("user:  %s\n", rec.User)
	fmt.Printf("url:   %s\n", rec.URL)
	fmt.Printf("notes: %s\n", rec.Notes)
	return nil
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a record's fields",
	Long: `Update replaces every field of the record named by id. Flags left
unset keep the record's current value for that field — pass the ones
you want to change.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	addRecordFlags(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return fail(err)
	}

	s, err := newSteel()
	if err != nil {
		return fail(err)
	}

	current, err := s.Get(id)
	if err != nil {
		return fail(err)
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		current.Title = recTitle
	}
	if flags.Changed("user") {
		current.User = recUser
	}
	if flags.Changed("passphrase") || recGenerate > 0 {
		passphrase, err := resolvePassphrase()
		if err != nil {
			return fail(err)
		}
		current.Passphrase = passphrase
	}
	if flags.Changed("url") {
		current.URL = recURL
	}
	if flags.Changed("notes") {
		current.Notes = recNotes
	}

	if err := s.Update(id, current); err != nil {
		return fail(err)
	}

	note("updated record %d", id)
	return nil
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a record from the open database",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return fail(err)
	}

	s, err := newSteel()
	if err != nil {
		return fail(err)
	}

	if err := s.Delete(id); err != nil {
		return fail(err)
	}

	note("deleted record %d", id)
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every record in the open database",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSteel()
	if err != nil {
		return fail(err)
	}

	records, err := s.List()
	if err != nil {
		return fail(err)
	}

	printRecords(records)
	return nil
}

var findCmd = &cobra.Command{
	Use:   "find <text>",
	Short: "Find records whose title, user, URL or notes contain text",
	Args:  cobra.ExactArgs(1),
	RunE:  runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	s, err := newSteel()
	if err != nil {
		return fail(err)
	}

	records, err := s.Find(args[0])
	if err != nil {
		return fail(err)
	}

	printRecords(records)
	return nil
}

var showCmd = &cobra.Command{
	Use:   "show <id> <field>",
	Short: "Print a single field of a record (field: passphrase, user, url, notes)",
	Args:  cobra.ExactArgs(2),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return fail(err)
	}

	s, err := newSteel()
	if err != nil {
		return fail(err)
	}

	val, err := s.ShowField(id, args[1])
	if err != nil {
		return fail(err)
	}

	fmt.Println(val)
	return nil
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return id, nil
}
