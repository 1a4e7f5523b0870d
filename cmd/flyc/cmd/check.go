package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fly-lang/flyc/internal/compiler"
	"github.com/fly-lang/flyc/internal/diagnostics"
)

// fm is the FileManager every command reads through; tests may replace it
// with a fake before calling checkCmd.RunE directly.
var fm FileManager = osFileManager{}

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "parse, resolve, and validate one or more fly source files, reporting every diagnostic",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(c *cobra.Command, args []string) error {
	var sources []compiler.Source
	for _, path := range args {
		bytes, err := fm.Read(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sources = append(sources, compiler.Source{Name: path, Bytes: bytes})
	}

	collector := diagnostics.NewCollectingSink()
	sink := diagnostics.Sink(collector)
	if verbose {
		sink = diagnostics.Tee{Sinks: []diagnostics.Sink{collector, diagnostics.NewLogSink(logger)}}
	}

	result, err := compiler.New(sink).Run(sources)
	if err != nil {
		return err
	}

	for _, d := range collector.Diagnostics {
		fmt.Fprintln(c.OutOrStdout(), d.String())
	}

	if result.ErrorsOccurred {
		return fmt.Errorf("%d file(s) failed to check", len(sources))
	}
	fmt.Fprintf(c.OutOrStdout(), "✓ %d file(s) checked, no errors\n", len(sources))
	return nil
}
