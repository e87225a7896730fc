// Steel is a local, single-user encrypted password manager. This binary is
// a thin wrapper around the library in pkg/steel: every subcommand maps to
// exactly one library call, and all cryptographic and storage logic lives
// in internal/container, internal/store and internal/session.
package main

import (
	"os"

	"github.com/byteptr/steel/internal/cli"
)

// version is the application version reported by "steel --version".
const version = "v1.0"

func main() {
	os.Exit(cli.Execute(version))
}
