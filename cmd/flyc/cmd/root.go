package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  = logrus.New()
)

// rootCmd is the flyc entry point; every subcommand hangs off it.
var rootCmd = &cobra.Command{
	Use:   "flyc",
	Short: "flyc is the front end for the fly language: lexer, parser, resolver, and validator",
}

// Execute runs the command tree; main only ever calls this.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	logger.SetFormatter(&logrus.TextFormatter{})
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every diagnostic through logrus as it is reported, not just at the end")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}
