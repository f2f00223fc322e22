package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/slotgen/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "slotgen",
	Short: "Slotgen - template-based text generator",
	Long: `Slotgen generates text from a definitions document of slots and templates.

Slots are named sets of values. A value marked with a trailing \s is used at
most once until every single-use value of its slot has been drawn. A $name
token expands to every line of the corpus "name". Templates mix literal text
with <SLOT> references.

	<BEGIN SLOTS>
	ANIMAL -> cat,dog,$animals
	<END SLOTS>
	<BEGIN TEMPLATES>
	SENTENCE -> The <ANIMAL> ran.
	<END TEMPLATES>`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the mapped exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default slotgen.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
