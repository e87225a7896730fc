package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byteptr/steel/internal/passgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate <length>",
	Short: "Print a random alphanumeric passphrase of the given length",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	length, err := parseID(args[0])
	if err != nil {
		return fail(err)
	}

	password, err := passgenGenerate(length)
	if err != nil {
		return fail(err)
	}

	fmt.Println(password)
	return nil
}

// passgenGenerate is the shared entry point records.go uses for --generate,
// kept independent of any open session since passgen has no state.
func passgenGenerate(length int) (string, error) {
	return passgen.Generate(length)
}
