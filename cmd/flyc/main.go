// Command flyc is the reference command-line driver for the fly compiler
// front end: it reads source files from disk, feeds them through
// compiler.Pipeline, and reports diagnostics. Everything past the
// front end — code generation, archive building — is out of scope and
// lives in a separate tool.
package main

import (
	"os"

	"github.com/fly-lang/flyc/cmd/flyc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
